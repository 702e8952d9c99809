// Package core holds the small numeric, buffer and configuration helpers
// shared by the splitter packages.
package core
