package assets

import _ "embed"

// DemoPage is the built-in demonstration document `lasso run` loads when
// no URL is given.
//
//go:embed demo/demo.html
var DemoPage string
