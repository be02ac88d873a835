// Package render turns page views and essay listings into terminal text,
// tables and HTML.
package render
