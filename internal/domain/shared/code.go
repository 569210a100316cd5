package shared

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_\-./]*$`)

// NormalizeCode trims and upper-cases a business code and checks its shape
func NormalizeCode(code string, maxLen int) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if maxLen > 0 && len(code) > maxLen {
		return "", NewDomainError("INVALID_CODE", "Code is too long")
	}
	if !codePattern.MatchString(code) {
		return "", NewDomainError("INVALID_CODE", "Code may only contain letters, digits, '-', '_', '.' and '/'")
	}
	return code, nil
}

// RequireName trims a display name and rejects blank or oversized values
func RequireName(name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if maxLen > 0 && len([]rune(name)) > maxLen {
		return "", NewDomainError("INVALID_NAME", "Name is too long")
	}
	return name, nil
}

// GenerateNumber builds a document number such as PO-20260105-3F2A9C1B
func GenerateNumber(prefix string, at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, at.Format("20060102"), suffix)
}
