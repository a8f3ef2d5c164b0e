package stripe

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

func TestBuildAcceptDisputeRequest(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	spec, err := c.BuildAcceptDisputeRequest(validAuth(), payments.DisputesFlowData{ConnectorDisputeID: "dp_1"})
	require.NoError(t, err)
	assert.Contains(t, spec.URL, "/disputes/dp_1/close")
}

func TestBuildAcceptDisputeRequestMissingID(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	_, err := c.BuildAcceptDisputeRequest(validAuth(), payments.DisputesFlowData{})
	assert.Error(t, err)
}

func TestBuildSubmitEvidenceRequest(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	spec, err := c.BuildSubmitEvidenceRequest(validAuth(), payments.DisputesFlowData{
		ConnectorDisputeID: "dp_1",
		EvidenceText:       "customer confirmed receipt by email",
		EvidenceFileID:     "file_1",
	})
	require.NoError(t, err)
	form, err := url.ParseQuery(string(spec.Body))
	require.NoError(t, err)
	assert.Equal(t, "customer confirmed receipt by email", form.Get("evidence[uncategorized_text]"))
	assert.Equal(t, "file_1", form.Get("evidence[uncategorized_file]"))
}

func TestParseDisputeResponseMapsStatuses(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	cases := map[string]payments.DisputeStatus{
		"needs_response": payments.DisputeStatusOpened,
		"under_review":   payments.DisputeStatusChallenged,
		"won":            payments.DisputeStatusWon,
		"lost":           payments.DisputeStatusLost,
		"warning_closed": payments.DisputeStatusCancelled,
	}
	for wireStatus, want := range cases {
		resp, errResp, err := c.ParseAcceptDisputeResponse(http.StatusOK, []byte(`{"id": "dp_1", "status": "`+wireStatus+`"}`))
		require.NoError(t, err)
		require.Nil(t, errResp)
		assert.Equal(t, want, resp.DisputeStatus, "wire status %q", wireStatus)
	}
}
