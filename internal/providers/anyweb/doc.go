// Package anyweb implements a provider.Scraper for arbitrary websites. It has
// no site-specific selectors: chapter lists are detected by scoring clusters
// of links, and page images are picked by a chain of exclusion checks.
package anyweb
