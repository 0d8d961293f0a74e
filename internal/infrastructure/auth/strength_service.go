package auth

import (
	"fmt"

	"github.com/nbutton23/zxcvbn-go"

	"github.com/you/userhub/domain"
)

// ZxcvbnChecker implements domain.StrengthChecker with the zxcvbn estimator.
type ZxcvbnChecker struct{}

// NewStrengthChecker creates a new password strength checker
func NewStrengthChecker() domain.StrengthChecker {
	return &ZxcvbnChecker{}
}

// Evaluate implements domain.StrengthChecker. userInputs (name, phone number)
// are penalized so a password echoing account details scores low.
func (z *ZxcvbnChecker) Evaluate(password string, userInputs ...string) (int, string) {
	result := zxcvbn.PasswordStrength(password, userInputs)
	feedback := fmt.Sprintf(
		"estimated crack time %s; use a longer password with uncommon words",
		result.CrackTimeDisplay,
	)
	return result.Score, feedback
}
