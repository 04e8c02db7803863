package server

import "net/http"

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>concretegen preview</title>
<style>
  body { font-family: sans-serif; margin: 2em; background: #f2f1ee; }
  img { border: 1px solid #999; image-rendering: pixelated; max-width: 100%; }
  label { display: inline-block; margin: 0 1em 0.5em 0; }
  input, select { width: 6em; }
</style>
</head>
<body>
<h1>concretegen preview</h1>
<form id="form">
  <label>color <input name="color" value="#8C8680"></label>
  <label>seed <input name="seed" value="42" type="number"></label>
  <label>size <input name="width" value="512" type="number"></label>
  <label>style
    <select name="style">
      <option value="">custom</option>
      <option>light-smooth</option>
      <option>heavy-knockdown</option>
      <option>rough-industrial</option>
      <option>weathered</option>
    </select>
  </label>
  <label>roughness <input name="roughness" value="1.0" step="0.1" type="number"></label>
  <label>cracks <input name="cracks" value="1.0" step="0.1" type="number"></label>
  <button type="submit">render</button>
</form>
<p><img id="preview" src="/texture.png?width=512&height=512&seed=42" alt="texture preview"></p>
<script>
document.getElementById('form').addEventListener('submit', function (ev) {
  ev.preventDefault();
  var data = new FormData(ev.target);
  var params = new URLSearchParams();
  data.forEach(function (v, k) { if (v !== '') params.set(k, v); });
  params.set('height', params.get('width') || '512');
  document.getElementById('preview').src = '/texture.png?' + params.toString();
});
</script>
</body>
</html>
`

func (p *Preview) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}
