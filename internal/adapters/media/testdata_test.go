package media

const watchPageHTML = `<!DOCTYPE html>
<html>
<head>
<title>Never Gonna Give You Up - YouTube</title>
<meta property="og:title" content="Rick Astley - Never Gonna Give You Up (Official Music Video)">
<meta property="og:url" content="https://www.youtube.com/watch?v=dQw4w9WgXcQ">
<meta property="og:image" content="https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg">
<meta itemprop="duration" content="PT3M33S">
</head>
<body>
<span itemprop="author" itemscope itemtype="http://schema.org/Person">
<link itemprop="url" href="https://www.youtube.com/@RickAstleyYT">
<link itemprop="name" content="Rick Astley">
</span>
<link itemprop="name" content="Not the author">
</body>
</html>`

const searchPageHTML = `<html><body>
<script>var ytInitialData = {"url":"/watch?v=dQw4w9WgXcQ","other":"/watch?v=dQw4w9WgXcQ&t=1"};</script>
<a href="/watch?v=yPYZpwSpKmA">second</a>
<a href="/watch?v=short">too short</a>
</body></html>`
