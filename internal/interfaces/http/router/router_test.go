package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/erp/paymentrouter/internal/application/authn"
	apppayments "github.com/erp/paymentrouter/internal/application/payments"
	appwebhooks "github.com/erp/paymentrouter/internal/application/webhooks"
	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/identity"
	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/erp/paymentrouter/internal/infrastructure/auth"
	"github.com/erp/paymentrouter/internal/infrastructure/cache"
	"github.com/erp/paymentrouter/internal/infrastructure/config"
	"github.com/erp/paymentrouter/internal/infrastructure/pipeline"
	"github.com/erp/paymentrouter/internal/interfaces/http/middleware"
)

// fakeMerchantAccounts is a minimal in-memory identity.MerchantAccountRepository.
type fakeMerchantAccounts struct {
	byID map[uuid.UUID]*identity.MerchantAccount
}

func (f *fakeMerchantAccounts) FindByID(_ context.Context, id uuid.UUID) (*identity.MerchantAccount, error) {
	return f.byID[id], nil
}
func (f *fakeMerchantAccounts) FindByAPIKeyHash(context.Context, string) (*identity.MerchantAccount, error) {
	return nil, nil
}
func (f *fakeMerchantAccounts) FindByPublishableKey(context.Context, string) (*identity.MerchantAccount, error) {
	return nil, nil
}
func (f *fakeMerchantAccounts) FindByOrganizationID(context.Context, string, shared.Filter) ([]identity.MerchantAccount, error) {
	return nil, nil
}
func (f *fakeMerchantAccounts) Save(context.Context, *identity.MerchantAccount) error { return nil }
func (f *fakeMerchantAccounts) Delete(context.Context, uuid.UUID) error               { return nil }

type fakeProfiles struct {
	byID map[uuid.UUID]*identity.Profile
}

func (f *fakeProfiles) FindByID(_ context.Context, id uuid.UUID) (*identity.Profile, error) {
	return f.byID[id], nil
}
func (f *fakeProfiles) FindByMerchantID(context.Context, uuid.UUID, shared.Filter) ([]identity.Profile, error) {
	return nil, nil
}
func (f *fakeProfiles) Save(context.Context, *identity.Profile) error { return nil }
func (f *fakeProfiles) Delete(context.Context, uuid.UUID) error       { return nil }

type fakeAPIKeys struct {
	byHash map[string]*identity.ApiKey
}

func (f *fakeAPIKeys) FindByHashedKey(_ context.Context, hash string) (*identity.ApiKey, error) {
	return f.byHash[hash], nil
}
func (f *fakeAPIKeys) FindByMerchantID(context.Context, uuid.UUID) ([]identity.ApiKey, error) {
	return nil, nil
}
func (f *fakeAPIKeys) Save(context.Context, *identity.ApiKey) error { return nil }
func (f *fakeAPIKeys) Delete(context.Context, uuid.UUID) error      { return nil }

type fakeEphemeralKeys struct{}

func (fakeEphemeralKeys) FindByID(context.Context, string) (*identity.EphemeralKey, error) {
	return nil, nil
}
func (fakeEphemeralKeys) Save(context.Context, *identity.EphemeralKey, time.Duration) error {
	return nil
}
func (fakeEphemeralKeys) Delete(context.Context, string) error { return nil }

type fakeConnectorAccounts struct {
	byProfileAndConnector map[string]*identity.MerchantConnectorAccount
}

func key(profileID uuid.UUID, connectorName string) string {
	return profileID.String() + "|" + connectorName
}

func (f *fakeConnectorAccounts) FindByID(_ context.Context, id uuid.UUID) (*identity.MerchantConnectorAccount, error) {
	for _, a := range f.byProfileAndConnector {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}
func (f *fakeConnectorAccounts) FindByProfileID(_ context.Context, profileID uuid.UUID) ([]identity.MerchantConnectorAccount, error) {
	var out []identity.MerchantConnectorAccount
	for _, a := range f.byProfileAndConnector {
		if a.ProfileID == profileID {
			out = append(out, *a)
		}
	}
	return out, nil
}
func (f *fakeConnectorAccounts) FindUsableByProfileAndConnector(_ context.Context, profileID uuid.UUID, connectorName string) (*identity.MerchantConnectorAccount, error) {
	return f.byProfileAndConnector[key(profileID, connectorName)], nil
}
func (f *fakeConnectorAccounts) Save(context.Context, *identity.MerchantConnectorAccount) error {
	return nil
}
func (f *fakeConnectorAccounts) Delete(context.Context, uuid.UUID) error { return nil }

// fakeConnector implements the authorize capability triple over a real
// httptest server, mirroring the application/payments fake.
type fakeConnector struct {
	baseURL    string
	nextStatus payments.AttemptStatus
	declineErr *payments.ErrorResponse
}

func (c *fakeConnector) Info() connector.Info { return connector.Info{Name: "fake", BaseURL: c.baseURL} }

func (c *fakeConnector) BuildAuthorizeRequest(payments.ConnectorAuth, payments.PaymentsAuthorizeData) (connector.RequestSpec, error) {
	return connector.RequestSpec{Method: http.MethodPost, URL: c.baseURL + "/authorize"}, nil
}

func (c *fakeConnector) ParseAuthorizeResponse(int, []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
	if c.declineErr != nil {
		return payments.PaymentsResponseData{}, payments.AttemptStatusFailure, c.declineErr, nil
	}
	return payments.PaymentsResponseData{ConnectorTransactionID: "txn_1"}, c.nextStatus, nil, nil
}

type fixture struct {
	engine    *httptest.Server
	profileID uuid.UUID
	apiKey    string
}

func newFixture(t *testing.T, declineErr *payments.ErrorResponse) *fixture {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	t.Cleanup(backend.Close)

	fc := &fakeConnector{baseURL: backend.URL, nextStatus: payments.AttemptStatusCharged, declineErr: declineErr}
	registry := connector.NewRegistry()
	registry.Register(fc)

	merchantID := uuid.New()
	profileID := uuid.New()

	merchantAccounts := &fakeMerchantAccounts{byID: map[uuid.UUID]*identity.MerchantAccount{}}
	merchant, err := identity.NewMerchantAccount("org_1", payments.NewSecret[payments.MerchantDetailsTag](`{"name":"acme"}`))
	require.NoError(t, err)
	merchant.ID = merchantID
	merchantAccounts.byID[merchantID] = merchant

	profile, err := identity.NewProfile(merchantID, "default")
	require.NoError(t, err)
	profile.ID = profileID
	profiles := &fakeProfiles{byID: map[uuid.UUID]*identity.Profile{profileID: profile}}

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret: "test-secret-key-at-least-32-characters-long", RefreshSecret: "test-refresh-secret-key-32-chars-long",
		AccessTokenExpiration: time.Hour, RefreshTokenExpiration: 24 * time.Hour, Issuer: "test",
	})
	apiKeys := &fakeAPIKeys{byHash: map[string]*identity.ApiKey{}}
	resolver := authn.NewResolver(merchantAccounts, profiles, apiKeys, fakeEphemeralKeys{}, jwtService, nil, "", "hash-secret", false)

	rawKey := "sk_test_abc"
	apiKey, err := identity.NewAPIKey(merchantID, "default", resolver.HashAPIKey(rawKey), nil)
	require.NoError(t, err)
	apiKeys.byHash[apiKey.HashedKey] = apiKey

	details, _ := json.Marshal(map[string]string{"auth_type": string(payments.AuthTypeHeaderKey), "api_key": "sk_live_whatever"})
	connectorAccounts := &fakeConnectorAccounts{byProfileAndConnector: map[string]*identity.MerchantConnectorAccount{}}
	mca, err := identity.NewMerchantConnectorAccount(merchantID, profileID, "fake", identity.ConnectorTypePaymentProcessor,
		payments.NewSecret[payments.ConnectorAccountDetailsTag](string(details)))
	require.NoError(t, err)
	connectorAccounts.byProfileAndConnector[key(profileID, "fake")] = mca

	svc := apppayments.NewService(connectorAccounts, registry, cache.NewInMemoryIdempotencyStore(), backend.Client(), pipeline.DefaultRetryPolicy())
	dispatcher := appwebhooks.NewDispatcher(registry, nil)

	engine := New(Dependencies{
		Resolver:          resolver,
		PaymentsService:   svc,
		WebhookDispatcher: dispatcher,
		CORSConfig:        middleware.DefaultCORSConfig(),
	})

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &fixture{engine: server, profileID: profileID, apiKey: rawKey}
}

func (f *fixture) url(path string) string { return f.engine.URL + path }

func TestAuthorizeHappyPathReturnsChargedStatus(t *testing.T) {
	f := newFixture(t, nil)

	body := map[string]any{
		"attempt_id": "att_1",
		"amount":     1234,
		"currency":   "eur",
		"payment_method_data": map[string]any{
			"type": "card",
			"card": map[string]string{
				"number": "4242424242424242", "expiry_month": "12", "expiry_year": "2030", "cvc": "123",
			},
		},
		"confirm":        true,
		"capture_method": "automatic",
	}
	raw, _ := json.Marshal(body)

	req, _ := http.NewRequest(http.MethodPost, f.url("/api/v1/connectors/fake/payments/authorize"), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", f.apiKey)
	req.Header.Set("X-Profile-Id", f.profileID.String())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, string(payments.AttemptStatusCharged), out["status"])
}

func TestAuthorizeDeclineReturns200WithErrorBody(t *testing.T) {
	declineErr := payments.NewErrorResponse("card_declined", "the card was declined", "do_not_honor", 402, payments.AttemptStatusFailure, "")
	f := newFixture(t, &declineErr)

	body := map[string]any{
		"attempt_id": "att_2",
		"amount":     500,
		"currency":   "usd",
		"payment_method_data": map[string]any{
			"type": "card",
			"card": map[string]string{
				"number": "4000000000000002", "expiry_month": "12", "expiry_year": "2030", "cvc": "123",
			},
		},
	}
	raw, _ := json.Marshal(body)

	req, _ := http.NewRequest(http.MethodPost, f.url("/api/v1/connectors/fake/payments/authorize"), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", f.apiKey)
	req.Header.Set("X-Profile-Id", f.profileID.String())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, string(payments.AttemptStatusFailure), out["status"])
	errBody := out["error"].(map[string]any)
	require.Equal(t, "card_declined", errBody["code"])
}

func TestMissingCredentialsReturns401Envelope(t *testing.T) {
	f := newFixture(t, nil)

	req, _ := http.NewRequest(http.MethodPost, f.url("/api/v1/connectors/fake/payments/authorize"), bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	errBody := out["error"].(map[string]any)
	require.Equal(t, "invalid_request", errBody["type"])
}

func TestUnknownConnectorReturns404(t *testing.T) {
	f := newFixture(t, nil)

	req, _ := http.NewRequest(http.MethodPost, f.url("/api/v1/connectors/nope/payments/authorize"), bytes.NewReader([]byte(`{"attempt_id":"a","amount":100,"currency":"usd","payment_method_data":{"type":"card","card":{"number":"4242","expiry_month":"12","expiry_year":"2030","cvc":"123"}}}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", f.apiKey)
	req.Header.Set("X-Profile-Id", f.profileID.String())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
