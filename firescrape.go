// Package firescrape provides a CLI-based wrapper around the Firecrawl
// scraping API. It scrapes, crawls, maps and searches the web through the
// hosted API when a credential is configured and falls back to local HTML
// extraction and a free search engine when it is not. Batch runs persist a
// checkpoint so an interrupted run resumes where it stopped.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., firecrawl/, readability/, goquery/).
package firescrape
