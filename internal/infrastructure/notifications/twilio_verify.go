package notifications

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"

	"github.com/you/userhub/domain"
)

// TwilioVerifyService implements domain.PhoneVerifier against the Twilio
// Verify API. Attempt state lives entirely with Twilio; this side only sees
// the check status.
type TwilioVerifyService struct {
	client     *twilio.RestClient
	serviceSID string
}

// NewTwilioVerifyService creates a new Twilio verification client
func NewTwilioVerifyService(accountSID, authToken, serviceSID string) domain.PhoneVerifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioVerifyService{
		client:     client,
		serviceSID: serviceSID,
	}
}

// SendCode implements domain.PhoneVerifier
func (t *TwilioVerifyService) SendCode(ctx context.Context, phoneNumber string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phoneNumber)
	params.SetChannel("sms")

	if _, err := t.client.VerifyV2.CreateVerification(t.serviceSID, params); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

// CheckCode implements domain.PhoneVerifier. Only the "approved" status
// counts as success; "pending" and "canceled" do not.
func (t *TwilioVerifyService) CheckCode(ctx context.Context, phoneNumber, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phoneNumber)
	params.SetCode(code)

	check, err := t.client.VerifyV2.CreateVerificationCheck(t.serviceSID, params)
	if err != nil {
		return false, fmt.Errorf("failed to check verification code: %w", err)
	}

	return check.Status != nil && *check.Status == "approved", nil
}
