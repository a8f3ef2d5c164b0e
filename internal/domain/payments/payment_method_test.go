package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethodDataValidate(t *testing.T) {
	t.Run("card kind with populated payload is valid", func(t *testing.T) {
		pmd := PaymentMethodData{
			Kind: PaymentMethodKindCard,
			Card: &Card{
				Number:      NewSecret[CardNumberTag]("4242424242424242"),
				ExpiryMonth: "12",
				ExpiryYear:  "2030",
				CVC:         NewSecret[CardCVCTag]("123"),
			},
		}
		assert.NoError(t, pmd.Validate())
	})

	t.Run("card kind with no payload is a missing field error", func(t *testing.T) {
		pmd := PaymentMethodData{Kind: PaymentMethodKindCard}
		err := pmd.Validate()
		assert.Error(t, err)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		pmd := PaymentMethodData{Kind: PaymentMethodKind("not_a_real_kind")}
		err := pmd.Validate()
		assert.Error(t, err)
	})

	t.Run("wallet kind with populated payload is valid", func(t *testing.T) {
		pmd := PaymentMethodData{
			Kind:   PaymentMethodKindWallet,
			Wallet: &WalletData{Kind: WalletApplePay, ApplePayToken: NewSecret[TokenTag]("tok_1")},
		}
		assert.NoError(t, pmd.Validate())
	})
}

func TestCurrencyExponent(t *testing.T) {
	t.Run("JPY is a zero-decimal currency", func(t *testing.T) {
		assert.Equal(t, 0, CurrencyJPY.Exponent())
	})

	t.Run("USD has two minor-unit digits", func(t *testing.T) {
		assert.Equal(t, 2, CurrencyUSD.Exponent())
	})

	t.Run("LowerCode lower-cases for the wire", func(t *testing.T) {
		assert.Equal(t, "eur", CurrencyEUR.LowerCode())
	})
}

func TestMinorUnitsConversion(t *testing.T) {
	t.Run("1234 minor units is 12.34 major for a 2-exponent currency", func(t *testing.T) {
		assert.InDelta(t, 12.34, MinorUnits(1234).ToMajor(CurrencyEUR), 0.001)
	})

	t.Run("round trips back to the same minor-unit amount", func(t *testing.T) {
		amount := MinorUnitsFromMajor(12.34, CurrencyEUR)
		assert.Equal(t, MinorUnits(1234), amount)
	})
}
