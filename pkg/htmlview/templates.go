package htmlview

const pageTemplate = `{{define "page"}}<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.PageTitle}}</title>
  {{if hasMap .Blocks}}<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>{{end}}
  <style>
    body { margin: 0; font-family: sans-serif; display: flex; min-height: 100vh; }
    nav { width: 16rem; padding: 1rem; background: #f0f2f6; }
    main { flex: 1; padding: 1rem 3rem; }
    .columns { display: flex; gap: 1.5rem; }
    .columns > div { flex: 1; }
    .columns img { width: 100%; }
    .info { background: #e8f0fe; padding: .75rem; }
    .success { background: #e6f4ea; padding: .75rem; }
    .warning { background: #fef7e0; padding: .75rem; }
    .error { background: #fce8e6; padding: .75rem; }
    #map { height: 420px; }
  </style>
</head>
<body>
  <nav>
    <h2>{{.Sidebar}}</h2>
    <form method="get" action="/app">
      <fieldset>
        <legend>Aller à</legend>
        {{range .Menu}}<label><input type="radio" name="page" value="{{.Slug}}"{{if .Active}} checked{{end}} onchange="this.form.submit()"> {{.Name}}</label><br>
        {{end}}
      </fieldset>
      <noscript><button type="submit">Aller</button></noscript>
    </form>
  </nav>
  <main>
    <form method="post" action="/app/action" id="page-form">
      <input type="hidden" name="page" value="{{.Page.Slug}}">
      <input type="hidden" id="pending-action" name="action" value="" disabled>
      {{range .Blocks}}{{template "block" .}}{{end}}
    </form>
  </main>
  <script>
    function submitAction(kind) {
      var pending = document.getElementById("pending-action");
      pending.value = kind;
      pending.disabled = false;
      document.getElementById("page-form").submit();
    }
  </script>
</body>
</html>{{end}}

{{define "block"}}{{if eq .Kind "title"}}<h1>{{.Text}}</h1>
{{else if eq .Kind "header"}}<h2>{{.Text}}</h2>
{{else if eq .Kind "subheader"}}<h3>{{.Text}}</h3>
{{else if eq .Kind "markdown"}}<div class="markdown">{{markdown .Text}}</div>
{{else if eq .Kind "text"}}<p class="text">{{.Text}}</p>
{{else if eq .Kind "info"}}<div class="info" role="status">{{.Text}}</div>
{{else if eq .Kind "success"}}<div class="success" role="status">{{.Text}}</div>
{{else if eq .Kind "warning"}}<div class="warning" role="alert">{{.Text}}</div>
{{else if eq .Kind "error"}}<div class="error" role="alert">{{.Text}}</div>
{{else if eq .Kind "image"}}<figure><img src="{{.Image.URL}}" alt="{{.Caption}}">{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</figure>
{{else if eq .Kind "columns"}}<div class="columns">{{range .Columns}}<div>{{range .}}{{template "block" .}}{{end}}</div>{{end}}</div>
{{else if eq .Kind "number_input"}}<label>{{.Input.Label}} <input type="number" name="{{.Input.Name}}" value="{{number .Input.Format .Input.Value}}" min="{{.Input.Min}}" max="{{.Input.Max}}" step="0.000001"></label><br>
{{else if eq .Kind "radio"}}<fieldset><legend>{{.Radio.Label}}</legend>{{$radio := .Radio}}{{range .Radio.Options}}<label><input type="radio" name="{{$radio.Name}}" value="{{.Value}}"{{if .Selected}} checked{{end}} onchange="submitAction('{{$radio.Action}}')"> {{.Label}}</label> {{end}}</fieldset>
{{else if eq .Kind "button"}}<button type="submit" name="action" value="{{.Button.Action}}">{{.Button.Label}}</button>
{{else if eq .Kind "map"}}<div id="map"></div>
<input type="hidden" id="map-lat" name="latitude" disabled>
<input type="hidden" id="map-lon" name="longitude" disabled>
<script>
  (function () {
    var map = L.map("map").setView([{{.Map.Center.Latitude}}, {{.Map.Center.Longitude}}], {{.Map.Zoom}});
    L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
      attribution: "&copy; OpenStreetMap contributors"
    }).addTo(map);
    {{if .Map.LastClick}}L.marker([{{.Map.LastClick.Latitude}}, {{.Map.LastClick.Longitude}}]).addTo(map);{{end}}
    map.on("click", function (e) {
      var lat = document.getElementById("map-lat");
      var lon = document.getElementById("map-lon");
      lat.value = e.latlng.lat.toFixed(6);
      lon.value = e.latlng.lng.toFixed(6);
      lat.disabled = false;
      lon.disabled = false;
      submitAction("map_click");
    });
  })();
</script>
{{end}}{{end}}`

const errorTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p>{{.Status}} : {{.Message}}</p>
  {{if .TraceID}}<p>Référence : <code>{{.TraceID}}</code></p>{{end}}
  <p><a href="/app">Retour</a></p>
</body>
</html>`
