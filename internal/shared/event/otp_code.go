package event

const OTPCodeDestination string = "otp_code"
const OTPCodeConsumerNotification string = "otp_code_notification"

// OTPCodeMessage carries a freshly issued one-time code to the mailer.
// The code is plaintext in flight only; at rest it exists solely as a hash.
type OTPCodeMessage struct {
	Scope    string `json:"scope"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Code     string `json:"code"`
}
