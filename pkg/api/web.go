package api

import (
	"html/template"
	"log/slog"
	"net/http"
)

func (s *Server) handleWebIndex(w http.ResponseWriter, r *http.Request) {
	t, err := template.New("index").Parse(tmpl)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	if err := t.Execute(w, nil); err != nil {
		slog.Error("Template execution failed", "err", err, "remote", r.RemoteAddr)
	}
}

var tmpl = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Mediagate</title>
    <style>
        :root { --bg: #101418; --card: #1a2026; --text: #dde3e9; --accent: #3d8bfd; }
        body { background: var(--bg); color: var(--text); font-family: system-ui, sans-serif; display: grid; place-items: center; min-height: 100vh; margin: 0; }
        .container { background: var(--card); padding: 2rem; border-radius: 12px; box-shadow: 0 10px 30px rgba(0,0,0,0.5); width: 90%; max-width: 480px; }
        h1 { margin: 0 0 1rem; font-size: 1.4rem; color: var(--accent); text-align: center; }
        input { width: 100%; padding: 12px; margin: 8px 0; border: 1px solid #2b323a; border-radius: 6px; background: #131920; color: #fff; box-sizing: border-box; outline: none; }
        input:focus { border-color: var(--accent); }
        button { width: 100%; padding: 12px; border: none; border-radius: 6px; background: var(--accent); color: white; font-weight: bold; cursor: pointer; }
        button:disabled { background: #555; cursor: not-allowed; }
        #result { margin-top: 16px; line-height: 1.6; word-break: break-word; font-size: 0.92rem; }
        h3 { margin: 12px 0 4px; font-size: 1rem; }
        a { display: inline-block; margin: 3px; color: #7db4ff; text-decoration: none; border: 1px solid #7db4ff; padding: 4px 9px; border-radius: 4px; font-size: 0.85rem; }
        a:hover { background: #7db4ff; color: #101418; }
        .error { color: #ff6b6b; font-size: 0.9rem; }
        ul.hints { color: #9aa5b0; font-size: 0.85rem; padding-left: 18px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Mediagate</h1>
        <form id="dlForm">
            <input type="url" id="url" placeholder="Paste a video URL..." required>
            <input type="password" id="key" placeholder="API key" required>
            <button type="submit" id="btn">Get Download Links</button>
        </form>
        <div id="result"></div>
    </div>

    <script>
        const f = document.getElementById('dlForm'),
              r = document.getElementById('result'),
              b = document.getElementById('btn');

        const bucket = (title, list) => {
            if (!list || !list.length) return '';
            let html = '<h3>' + title + '</h3>';
            for (const fm of list) {
                const size = fm.filesize_formatted ? ' - ' + fm.filesize_formatted : '';
                html += '<a href="' + fm.url + '" target="_blank" rel="noopener">' +
                        (fm.quality || fm.format_id) + ' ' + (fm.ext || '').toUpperCase() + size + '</a>';
            }
            return html;
        };

        f.onsubmit = async (e) => {
            e.preventDefault();
            b.disabled = true;
            r.innerHTML = 'Resolving...';

            try {
                const resp = await fetch('/api/download-links', {
                    method: 'POST',
                    headers: {
                        'Content-Type': 'application/json',
                        'X-API-Key': document.getElementById('key').value
                    },
                    body: JSON.stringify({url: document.getElementById('url').value})
                });
                const data = await resp.json();

                if (!resp.ok) {
                    let html = '<div class="error">' + data.error + '</div>';
                    if (data.suggestions && data.suggestions.length) {
                        html += '<ul class="hints">' + data.suggestions.map(s => '<li>' + s + '</li>').join('') + '</ul>';
                    }
                    r.innerHTML = html;
                    return;
                }

                r.innerHTML =
                    bucket('Video with Audio', data.video_with_audio) +
                    bucket('Video Only', data.video_only) +
                    bucket('Audio Only', data.audio_only) ||
                    '<div class="error">No downloadable formats found.</div>';

            } catch (err) {
                r.innerHTML = '<div class="error">' + err.message + '</div>';
            } finally {
                b.disabled = false;
            }
        };
    </script>
</body>
</html>
`
