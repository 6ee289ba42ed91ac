package assets

import _ "embed"

// Content script and styles embedded at compile time

//go:embed lasso/lasso.js
var LassoScript string

//go:embed lasso/lasso.css
var LassoStyles string
