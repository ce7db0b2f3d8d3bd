package rod

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// LocatorsHTML has one target per locator strategy.
const (
	LocatorsHTML = `<!DOCTYPE html>
<html>
<head><title>Locators</title></head>
<body>
	<form>
		<input id="email" name="email" class="form_input" type="text" placeholder="Email" />
		<button id="save" class="btn" type="button" disabled>Save</button>
		<button id="cancel" class="btn" type="button">Cancel</button>
	</form>
	<a href="#docs" id="docs-link">Read the docs</a>
	<p class="hint" style="display:none">hidden hint</p>
	<ul>
		<li class="item">one</li>
		<li class="item">two</li>
		<li class="item">three</li>
	</ul>
</body>
</html>`
)

func serveHTML(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/locators.html", serveHTML(LocatorsHTML))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}
