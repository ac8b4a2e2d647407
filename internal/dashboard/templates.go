package dashboard

import (
	"html/template"
	"net/url"

	"github.com/ziadkadry99/learndash/internal/compute"
	"github.com/ziadkadry99/learndash/internal/queryparams"
)

var funcMap = template.FuncMap{
	"commas":     compute.Commas,
	"sub":        func(a, b int) int { return a - b },
	"sectionURL": sectionURL,
}

// sectionURL links to a section and carries the current URL parameters.
func sectionURL(slug, rawQuery string) template.URL {
	u := url.URL{Path: "/s/" + slug}
	if q := queryparams.Parse(rawQuery); q.Len() > 0 {
		u.RawQuery = q.Encode()
	}
	return template.URL(u.String())
}

// pageTemplate is the layout shared by every section.
const pageTemplate = `{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Active.Title}} · {{.Title}}</title>
  <style>` + cssContent + `</style>
  <script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
</head>
<body>
  <nav class="sidebar">
    <h2 class="project-title">{{.Icon}} {{.Title}}</h2>
    <form class="search" action="/api/search" method="get" id="search-form">
      <input type="text" name="q" id="search-input" placeholder="Search sections..." autocomplete="off">
    </form>
    <ul class="search-results" id="search-results"></ul>
    <ul class="sections">
      {{range .Sections}}<li><a href="{{sectionURL .Slug $.Query}}"{{if eq .Slug $.Active.Slug}} class="active"{{end}}>{{.Icon}} {{.Label}}</a></li>
      {{end}}
    </ul>
    <h3>Quick links</h3>
    <ul class="links">
      {{range .Links}}<li><a href="{{.URL}}" target="_blank" rel="noopener">{{.Label}}</a></li>
      {{end}}
    </ul>
    <p class="caption">🔧 learndash version: <strong>{{.Version}}</strong></p>
    <form action="/session/end" method="post"><button type="submit" class="link-button">End session</button></form>
  </nav>
  <main class="content">
    <h1>{{.Active.Icon}} {{.Active.Title}}</h1>
    <article class="body">{{.Active.BodyHTML}}</article>
    {{if eq .Active.Slug "syntax"}}{{template "syntax" .}}
    {{else if eq .Active.Slug "layout"}}{{template "layout" .}}
    {{else if eq .Active.Slug "state"}}{{template "state" .}}
    {{else if eq .Active.Slug "charts"}}{{template "charts" .}}
    {{else if eq .Active.Slug "files"}}{{template "files" .}}
    {{else if eq .Active.Slug "params"}}{{template "params" .}}
    {{else if eq .Active.Slug "deploy"}}{{template "deploy" .}}{{end}}
    {{range .Active.Code}}<details class="code-box">
      <summary>📄 {{.Title}}</summary>
      {{.HTML}}
    </details>
    {{end}}
    <hr>
    <footer class="caption">Made with ❤️ for learning Streamlit. | See the official homepage, docs and Community Cloud guide.</footer>
  </main>
  <script>` + scriptContent + `</script>
</body>
</html>{{end}}`

// sectionTemplates holds the interactive part of each section.
const sectionTemplates = `
{{define "syntax"}}<div class="columns">
  <div>
    <h3>Output &amp; widgets</h3>
    <form method="get" action="/s/syntax">
      <label>Enter your name <input type="text" name="name" value="{{.Greeting.Name}}"></label>
      <label>Difficulty: <output id="level-out">{{.Greeting.Level}}</output>
        <input type="range" name="level" min="1" max="10" value="{{.Greeting.Level}}" oninput="document.getElementById('level-out').value=this.value">
      </label>
      <button type="submit" name="greet" value="1">Say hello</button>
    </form>
    {{with .Greeting.Message}}<div class="callout success">{{.}}</div>{{end}}
  </div>
  <div>
    <h3>Tabs &amp; expander</h3>
    <div class="tabs">
      <input type="radio" name="tab" id="tab-a" checked><label for="tab-a">Tab A</label>
      <input type="radio" name="tab" id="tab-b"><label for="tab-b">Tab B</label>
      <div class="tab-panel" id="panel-a">Tab A content</div>
      <div class="tab-panel" id="panel-b">Tab B content</div>
    </div>
    <details class="expander"><summary>Expand to see more</summary>
      <p>Put detailed explanations or code here.</p>
    </details>
  </div>
</div>{{end}}

{{define "layout"}}<div class="metrics">
  {{range .Metrics}}<div class="metric"><span class="metric-label">{{.Label}}</span><span class="metric-value">{{.Value}}</span></div>
  {{end}}
</div>
<hr>
<div class="columns wide-left">
  <div>
    <div class="callout info">Place charts, tables, text or any other element inside a column.</div>
    <table class="data">
      <thead><tr><th>x</th><th>y</th></tr></thead>
      <tbody>{{range .Table}}<tr><td>{{.X}}</td><td>{{.Y}}</td></tr>{{end}}</tbody>
    </table>
  </div>
  <div><div class="callout warning">Callouts are handy for info, warning and success states.</div></div>
</div>{{end}}

{{define "state"}}<h3>Session state</h3>
<div class="counter">
  <form method="post" action="/s/state/counter/increment"><input type="hidden" name="n" value="{{.SumN}}"><button type="submit" data-event="counter.increment">➕ Increment</button></form>
  <form method="post" action="/s/state/counter/decrement"><input type="hidden" name="n" value="{{.SumN}}"><button type="submit" data-event="counter.decrement">➖ Decrement</button></form>
  <form method="post" action="/s/state/counter/reset"><input type="hidden" name="n" value="{{.SumN}}"><button type="submit" data-event="counter.reset">🔄 Reset</button></form>
</div>
<div class="callout success">Current value: <strong id="counter-value">{{.Counter}}</strong></div>
<h3>Caching (simulated delay)</h3>
<form method="get" action="/s/state" class="slider">
  <label>Sum range: <output id="n-out">{{.SumN}}</output>
    <input type="range" name="n" min="{{.Range.Min}}" max="{{.Range.Max}}" step="{{.Range.Step}}" value="{{.SumN}}" oninput="document.getElementById('n-out').value=this.value" onchange="this.form.submit()">
  </label>
  <noscript><button type="submit">Compute</button></noscript>
</form>
{{with .SumError}}<div class="callout error">{{.}}</div>{{end}}
{{with .Sum}}<div class="callout info">Sum of 0 to {{sub .N 1}}: <strong>{{commas .Sum}}</strong>
  <span class="caption">{{if .Cached}}(cached){{else}}(computed in {{.Elapsed}}){{end}}</span></div>{{end}}
{{with .CachedN}}<p class="caption">Cached inputs: {{range $i, $n := .}}{{if $i}}, {{end}}{{commas $n}}{{end}}</p>{{end}}{{end}}

{{define "charts"}}<div class="tabs">
  <input type="radio" name="chart" id="tab-a" checked><label for="tab-a">Line chart</label>
  <input type="radio" name="chart" id="tab-b"><label for="tab-b">Single series</label>
  <div class="tab-panel" id="panel-a"><p>A simple line chart of sin and cos.</p><pre class="mermaid">{{.WavesChart}}</pre></div>
  <div class="tab-panel" id="panel-b"><p>The sin series on its own.</p><pre class="mermaid">{{.SinChart}}</pre></div>
</div>{{end}}

{{define "files"}}<div class="columns">
  <div>
    <h3>File upload</h3>
    <form method="post" action="/s/files/upload" enctype="multipart/form-data">
      <input type="file" name="file" accept=".csv">
      <button type="submit">Upload</button>
    </form>
    {{with .UploadError}}<div class="callout error">{{.}}</div>{{end}}
    {{with .Upload}}<div class="callout success">Upload complete! shape = ({{.Rows}}, {{.Cols}})</div>
    <table class="data">
      <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
      <tbody>{{range .Preview}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
    </table>{{end}}
  </div>
  <div>
    <h3>Image</h3>
    <figure><img src="{{.ImageURL}}" alt="Sample image"><figcaption class="caption">Sample image (official example)</figcaption></figure>
  </div>
</div>
<hr>
<h3>Form (validation example)</h3>
<form method="post" action="/s/files/contact" class="contact">
  <div class="columns">
    <label>Name* <input type="text" name="name" placeholder="Jane Doe"></label>
    <label>Email* <input type="text" name="email" placeholder="you@example.com"></label>
  </div>
  <label>Message <textarea name="message" placeholder="What would you like to ask?"></textarea></label>
  <label class="check"><input type="checkbox" name="consent" value="1"> I agree to the collection and use of my personal data.</label>
  <button type="submit">Submit</button>
</form>
{{with .Contact}}<div class="callout {{.Kind}}">{{.Text}}</div>{{end}}{{end}}

{{define "params"}}<div class="callout info">Current URL parameters: <code>{{"{"}}{{range $i, $k := .ParamKeys}}{{if $i}}, {{end}}'{{$k}}': '{{index $.Params $k}}'{{end}}{{"}"}}</code></div>
<h3>Writing parameters</h3>
<div class="columns">
  <form method="post" action="/s/params/apply">
    <input type="hidden" name="current" value="{{.Query}}">
    <label>name parameter <input type="text" name="name" value="{{.ParamName}}"></label>
    <button type="submit">Apply</button>
  </form>
  <form method="post" action="/s/params/clear">
    <input type="hidden" name="current" value="{{.Query}}">
    <button type="submit">Clear parameters</button>
  </form>
</div>{{end}}

{{define "deploy"}}<div class="callout success">All set! Push to GitHub and deploy straight from Community Cloud 🙌</div>{{end}}
`

const cssContent = `
:root { --bg: #ffffff; --bg-sidebar: #f1f3f5; --text: #212529; --muted: #868e96; --border: #dee2e6; --accent: #ff4b4b; }
* { box-sizing: border-box; }
body { margin: 0; display: flex; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; color: var(--text); background: var(--bg); }
.sidebar { width: 280px; min-height: 100vh; padding: 1.5rem 1rem; background: var(--bg-sidebar); border-right: 1px solid var(--border); }
.sidebar ul { list-style: none; padding: 0; }
.sidebar li a { display: block; padding: .35rem .5rem; border-radius: 6px; color: var(--text); text-decoration: none; }
.sidebar li a.active, .sidebar li a:hover { background: #fff; color: var(--accent); }
.search input { width: 100%; padding: .4rem .6rem; border: 1px solid var(--border); border-radius: 6px; }
.content { flex: 1; max-width: 960px; padding: 2rem 3rem; }
.columns { display: grid; grid-template-columns: 1fr 1fr; gap: 1.5rem; }
.columns.wide-left { grid-template-columns: 2fr 1fr; }
.metrics { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1rem; }
.metric-label { display: block; font-size: .85rem; color: var(--muted); }
.metric-value { font-size: 2rem; }
.callout { margin: 1rem 0; padding: .75rem 1rem; border-radius: 6px; }
.callout.success { background: #ebfbee; color: #2b8a3e; }
.callout.info { background: #e7f5ff; color: #1864ab; }
.callout.warning { background: #fff9db; color: #e67700; }
.callout.error { background: #fff5f5; color: #c92a2a; }
.caption { font-size: .85rem; color: var(--muted); }
.code-box, .expander { margin: 1rem 0; border: 1px solid var(--border); border-radius: 6px; padding: .5rem 1rem; }
.code-box pre { overflow-x: auto; }
.counter { display: flex; gap: .5rem; }
table.data { border-collapse: collapse; width: 100%; }
table.data th, table.data td { border: 1px solid var(--border); padding: .25rem .5rem; text-align: left; }
label { display: block; margin: .5rem 0; }
input[type=text], textarea { width: 100%; padding: .4rem; }
.tabs > input { display: none; }
.tabs > label { display: inline-block; padding: .4rem .8rem; cursor: pointer; border-bottom: 2px solid transparent; }
.tabs > input:checked + label { border-color: var(--accent); }
.tab-panel { display: none; padding: 1rem 0; }
#tab-a:checked ~ #panel-a, #tab-b:checked ~ #panel-b { display: block; }
.link-button { background: none; border: none; color: var(--muted); cursor: pointer; padding: 0; text-decoration: underline; }
img { max-width: 100%; }
`

// scriptContent wires the counter buttons and the sidebar search to
// /ws/events. Without JavaScript the plain forms still work.
const scriptContent = `
mermaid.initialize({ startOnLoad: true });
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws/events");
  var results = document.getElementById("search-results");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "counter") {
      var el = document.getElementById("counter-value");
      if (el) el.textContent = msg.counter || 0;
    } else if (msg.type === "search") {
      results.innerHTML = "";
      (msg.hits || []).forEach(function (h) {
        var li = document.createElement("li");
        var a = document.createElement("a");
        a.href = "/s/" + h.slug;
        a.textContent = h.title;
        li.appendChild(a);
        results.appendChild(li);
      });
    }
  };
  document.querySelectorAll("button[data-event]").forEach(function (btn) {
    btn.addEventListener("click", function (e) {
      if (ws.readyState !== WebSocket.OPEN) return;
      e.preventDefault();
      ws.send(JSON.stringify({ type: btn.dataset.event }));
    });
  });
  var input = document.getElementById("search-input");
  document.getElementById("search-form").addEventListener("submit", function (e) {
    if (ws.readyState !== WebSocket.OPEN) return;
    e.preventDefault();
    ws.send(JSON.stringify({ type: "search", query: input.value }));
  });
})();
`
