package diagnostics

import (
	"strings"
	"testing"
)

func TestCleanDOM_RemovesScriptStyle(t *testing.T) {
	raw := `
<body>
    <div id="inventory_container">Products</div>
    <script>window.backtrace = {}</script>
    <style>.inventory_list {}</style>
</body>`

	out := CleanDOM(raw, &DefaultCleanConfig)

	if strings.Contains(out, "<script") || strings.Contains(out, "<style") {
		t.Errorf("script/style tags must be removed, output: %s", out)
	}
	if !strings.Contains(out, `id="inventory_container"`) {
		t.Errorf("expected to keep normal elements, output: %s", out)
	}
}

func TestCleanDOM_RemovesComments(t *testing.T) {
	raw := `<body><!-- react root --><div>Swag Labs</div></body>`

	out := CleanDOM(raw, nil)

	if strings.Contains(out, "react root") {
		t.Errorf("HTML comments must be removed, output: %s", out)
	}
}

func TestCleanDOM_KeepsLocatorAttributes(t *testing.T) {
	raw := `
<body>
    <input class="input_error form_input" id="user-name" name="user-name" data-test="username" style="color:red" onclick="track()">
</body>`

	out := CleanDOM(raw, nil)

	for _, attr := range []string{`id="user-name"`, `class="input_error form_input"`, `name="user-name"`, `data-test="username"`} {
		if !strings.Contains(out, attr) {
			t.Errorf("%s must be kept, output: %s", attr, out)
		}
	}
	if strings.Contains(out, "style=") {
		t.Errorf("style attribute must be removed")
	}
	if strings.Contains(out, "onclick") {
		t.Errorf("event handlers must be removed")
	}
}

func TestCleanDOM_RendersBodyOnly(t *testing.T) {
	raw := `<html><head><title>Swag Labs</title><meta charset="utf-8"></head><body><div class="login_logo"></div></body></html>`

	out := CleanDOM(raw, nil)

	if strings.Contains(out, "<title>") {
		t.Errorf("head must not be rendered, output: %s", out)
	}
	if !strings.HasPrefix(out, "<body>") {
		t.Errorf("expected body root, output: %s", out)
	}
}

func TestCleanDOM_Truncates(t *testing.T) {
	raw := "<body>" + strings.Repeat("<p>item</p>", 100) + "</body>"
	cfg := DefaultCleanConfig
	cfg.MaxOutputSize = 64

	out := CleanDOM(raw, &cfg)

	if !strings.HasSuffix(out, "<!-- truncated -->") {
		t.Errorf("expected truncation marker, output: %s", out)
	}
	if len(out) > 64+len("\n<!-- truncated -->") {
		t.Errorf("output too long: %d", len(out))
	}
}
