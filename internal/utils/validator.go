package utils

import (
	"errors"
	"fmt"
	"net/url"
	"unicode/utf8"
)

// ErrValidation 输入校验失败的哨兵错误，handler 层据此返回 400，从不重试
var ErrValidation = errors.New("validation failed")

const (
	MaxSummaryLength = 200
	MaxAuthorLength  = 50
)

// ValidateSummary 摘要必填，去除首尾空白后最长200字符
// 调用方应先 TrimSpace 再传入
func ValidateSummary(summary string) error {
	if summary == "" {
		return fmt.Errorf("%w: summary cannot be empty", ErrValidation)
	}
	if utf8.RuneCountInString(summary) > MaxSummaryLength {
		return fmt.Errorf("%w: summary must be at most %d characters", ErrValidation, MaxSummaryLength)
	}
	return nil
}

// ValidateLink 链接必须是带 scheme 和 host 的绝对URL
func ValidateLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: link must be a well-formed absolute URL", ErrValidation)
	}
	return nil
}

// ValidateAuthor 作者最长50字符，空值由调用方回退为缺省署名
func ValidateAuthor(author string) error {
	if utf8.RuneCountInString(author) > MaxAuthorLength {
		return fmt.Errorf("%w: author must be at most %d characters", ErrValidation, MaxAuthorLength)
	}
	return nil
}
