package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the shared HTML document shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, templ.EscapeString(title)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</title><style>`+layoutCSS+`</style></head><body>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// UploadForm renders the spreadsheet upload form posting to action with the
// file in field. columns lists the headers the sheet must carry.
func UploadForm(action, field string, columns []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<main><h1>Upload project records</h1><p>The first sheet must have the columns:</p><ul>`); err != nil {
			return err
		}
		for _, c := range columns {
			if _, err := io.WriteString(w, `<li>`+templ.EscapeString(c)+`</li>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul><form method="post" enctype="multipart/form-data" action="`+
			templ.EscapeString(action)+`"><input type="file" name="`+templ.EscapeString(field)+
			`" accept=".xlsx" required> <button type="submit">Upload</button></form>`+
			`<p>The response is the same sheet with a <code>link</code> column.</p></main>`)
		return err
	})
}

const layoutCSS = `body{font-family:system-ui,sans-serif;max-width:40rem;margin:3rem auto;padding:0 1rem;color:#222}` +
	`h1{font-weight:600}li{font-family:monospace}button{padding:.4rem 1rem}`
