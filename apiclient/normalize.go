package apiclient

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"

	apierrors "github.com/kbukum/tripclient/errors"
)

// DetailSeparator joins the messages of a list-shaped "detail" field.
const DetailSeparator = ", "

// MessageRule replaces an extracted error message when Match reports true.
type MessageRule struct {
	// Name identifies the rule in logs.
	Name string
	// Match receives the HTTP status and the extracted message.
	Match func(status int, message string) bool
	// Replace is the message used instead.
	Replace string
}

// ContainsRule matches messages containing substr, ignoring case.
func ContainsRule(name, substr, replacement string) MessageRule {
	needle := strings.ToLower(substr)
	return MessageRule{
		Name: name,
		Match: func(_ int, message string) bool {
			return strings.Contains(strings.ToLower(message), needle)
		},
		Replace: replacement,
	}
}

// StatusContainsRule is ContainsRule restricted to one HTTP status.
func StatusContainsRule(name string, status int, substr, replacement string) MessageRule {
	inner := ContainsRule(name, substr, replacement)
	return MessageRule{
		Name: name,
		Match: func(s int, message string) bool {
			return s == status && inner.Match(s, message)
		},
		Replace: replacement,
	}
}

// Normalizer converts failed responses into APIErrors. It holds no mutable
// state; the same input always yields an equal error.
type Normalizer struct {
	exposeRawText bool
	rules         []MessageRule
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(exposeRawText bool, rules ...MessageRule) *Normalizer {
	return &Normalizer{exposeRawText: exposeRawText, rules: rules}
}

// Normalize builds the APIError for a non-2xx response. Rules apply to each
// entry of a detail list before the entries are joined.
func (n *Normalizer) Normalize(status int, body []byte) *apierrors.APIError {
	var parts []string
	if payload, ok := parseErrorBody(body); ok {
		parts = extractMessages(payload)
	} else if n.exposeRawText {
		if raw := strings.TrimSpace(string(body)); raw != "" {
			parts = []string{raw}
		}
	}
	return apierrors.FromStatus(status, n.join(status, parts))
}

// join rewrites each part through the rules and joins them. A replacement
// shared by several parts appears once.
func (n *Normalizer) join(status int, parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	out := make([]string, 0, len(parts))
	replaced := make(map[string]struct{})
	for _, p := range parts {
		msg, ok := n.applyRules(status, p)
		if ok {
			if _, dup := replaced[msg]; dup {
				continue
			}
			replaced[msg] = struct{}{}
		}
		out = append(out, msg)
	}
	return strings.Join(out, DetailSeparator)
}

func (n *Normalizer) applyRules(status int, message string) (string, bool) {
	for _, rule := range n.rules {
		if rule.Match != nil && rule.Match(status, message) {
			return rule.Replace, true
		}
	}
	return message, false
}

// parseErrorBody decodes an error body. Empty bodies and JSON values other
// than objects yield an empty object; ok is false only for unparsable text.
func parseErrorBody(body []byte) (map[string]any, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return map[string]any{}, true
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, false
	}
	obj, isObj := v.(map[string]any)
	if !isObj {
		return map[string]any{}, true
	}
	return obj, true
}

// extractMessages applies detail-list, detail-string, message priority.
// A nil result means the status default applies.
func extractMessages(payload map[string]any) []string {
	switch detail := payload["detail"].(type) {
	case []any:
		if len(detail) > 0 {
			return detailMessages(detail)
		}
	case string:
		if detail != "" {
			return []string{detail}
		}
	}
	if msg, ok := payload["message"].(string); ok && msg != "" {
		return []string{msg}
	}
	return nil
}

func detailMessages(entries []any) []string {
	msgs := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch e := entry.(type) {
		case map[string]any:
			if m := firstString(e, "msg", "message"); m != "" {
				msgs = append(msgs, m)
			}
		case string:
			if s := strings.TrimSpace(e); s != "" {
				msgs = append(msgs, s)
			}
		}
	}
	if len(msgs) == 0 {
		return []string{apierrors.MessageInvalidRequest}
	}
	return msgs
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
