package lib

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"digistore_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAndValidateBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"username":"admin","password":"secret"}`))

	body, err := ExtractAndValidateBody[structs.LoginRequest](r)
	require.NoError(t, err)
	assert.Equal(t, "admin", body.Username)
}

func TestExtractAndValidateBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("PUT", "/", strings.NewReader(`{"store_name":"x","unknown_key":"y"}`))

	_, err := ExtractAndValidateBody[structs.SettingsPatch](r)
	assert.ErrorIs(t, err, ErrInvalidBody)
}

func TestExtractAndValidateBodyReportsJSONFieldNames(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"productName":"","quantity":0,"paymentMethod":"BCA"}`))

	_, err := ExtractAndValidateBody[structs.OrderRequest](r)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))

	fields := map[string]string{}
	for _, fe := range ve.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "is required", fields["productName"])
	assert.Equal(t, "is required", fields["quantity"])
	assert.NotContains(t, fields, "paymentMethod")
}

func TestValidateSettingsPatch(t *testing.T) {
	mode := "closed"
	number := "08123"
	err := Validate(&structs.SettingsPatch{SiteMode: &mode, WhatsAppNumber: &number})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 2)
}

func TestValidateWhatsAppNumberDigitsOnly(t *testing.T) {
	for _, number := range []string{"+6281234567890", "-1234567", "1234.5678"} {
		err := Validate(&structs.SettingsPatch{WhatsAppNumber: &number})

		var ve *ValidationError
		require.True(t, errors.As(err, &ve), number)
		assert.Equal(t, "whatsapp_number", ve.Errors[0].Field)
		assert.Equal(t, "must contain digits only", ve.Errors[0].Message)
	}

	ok := "6281234567890"
	assert.NoError(t, Validate(&structs.SettingsPatch{WhatsAppNumber: &ok}))
}

func TestValidateOrderAmountBounds(t *testing.T) {
	err := Validate(&structs.OrderRequest{
		ProductName:   "Canva Pro",
		Quantity:      1000,
		Price:         9_300_000_000_000_000,
		PaymentMethod: "BCA",
	})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "price", ve.Errors[0].Field)
	assert.Equal(t, "must be less than or equal to 1000000000000", ve.Errors[0].Message)

	err = Validate(&structs.CartOrderRequest{
		Items:         []structs.CartItem{{ProductName: "Netflix", Quantity: 1, Price: 1_000_000_000_001}},
		PaymentMethod: "BCA",
	})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "items[0].price", ve.Errors[0].Field)
}
