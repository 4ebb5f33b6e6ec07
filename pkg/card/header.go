package card

import (
	"strconv"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
)

var (
	headerPolicyOnce sync.Once
	headerPolicy     *bluemonday.Policy
)

// HeaderMarkup projects caller supplied markup into the header slot after
// stripping everything but images and simple layout elements.
func HeaderMarkup(raw string) templ.Component {
	return templ.Raw(SanitizeHeader(raw))
}

// HeaderImage projects a single image into the header slot.
func HeaderImage(src string, width int) templ.Component {
	markup := `<img src="` + templ.EscapeString(strings.TrimSpace(src)) + `"`
	if width > 0 {
		markup += ` width="` + strconv.Itoa(width) + `"`
	}
	markup += ` alt="">`
	return HeaderMarkup(markup)
}

// SanitizeHeader returns raw with disallowed elements and attributes removed.
func SanitizeHeader(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(headerSanitizer().Sanitize(trimmed))
}

func headerSanitizer() *bluemonday.Policy {
	headerPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("div", "span", "p", "h1", "h2", "h3", "figure", "figcaption")
		policy.AllowImages()
		policy.AllowAttrs("width", "height").OnElements("img")
		policy.AllowAttrs("class").Globally()
		policy.AllowRelativeURLs(true)
		policy.AllowURLSchemes("http", "https")
		headerPolicy = policy
	})
	return headerPolicy
}
