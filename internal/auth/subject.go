package auth

import "strings"

// SubjectKey is the gin context key (and claims key) holding the caller's subject
const SubjectKey = "sub"

// SubjectFromAuthorizer returns the `sub` claim from an API Gateway
// authorizer block shaped as {"claims": {"sub": "..."}}. Claims arrive as
// map[string]interface{} from the JSON event, or map[string]string when
// built in code. A blank subject counts as absent.
func SubjectFromAuthorizer(authorizer map[string]interface{}) (string, bool) {
	if authorizer == nil {
		return "", false
	}

	var sub string
	switch claims := authorizer["claims"].(type) {
	case map[string]interface{}:
		sub, _ = claims[SubjectKey].(string)
	case map[string]string:
		sub = claims[SubjectKey]
	default:
		return "", false
	}

	if strings.TrimSpace(sub) == "" {
		return "", false
	}
	return sub, true
}
