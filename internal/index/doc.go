// Package index generates the HTML document that shows downloaded puzzle
// images in order.
//
// The document is built from the files actually present in the target
// directory, not from the URL list, so images that failed to download are
// simply absent. Files are ordered by the integer embedded in their name
// (the digits right before a period), which puts img2.jpg before img19.jpg.
package index
