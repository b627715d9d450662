package policy

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxPromptLength = 4000

var (
	ErrPromptTooLong = errors.New("prompt too long")
	ErrPromptBlocked = errors.New("prompt blocked by policy")
)

// 소문자 변환 후 매칭되는 차단 패턴
var blockPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(ignore|bypass).*(rules|system)`),
	regexp.MustCompile(`(hack|crack|steal|ddos)`),
	regexp.MustCompile(`(admin|root|password)`),
}

// CheckPrompt 채팅 입력 정책 검사, 통과하지 못하면 요청 자체가 거부됨
// 길이 한도는 바이트가 아니라 문자 수 기준
func CheckPrompt(prompt string) error {
	if utf8.RuneCountInString(prompt) > maxPromptLength {
		return ErrPromptTooLong
	}
	lowered := strings.ToLower(prompt)
	for _, pattern := range blockPatterns {
		if pattern.MatchString(lowered) {
			return ErrPromptBlocked
		}
	}
	return nil
}
