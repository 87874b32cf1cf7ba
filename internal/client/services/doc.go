// Package services contains the application services of the inventory
// client: item CRUD and selling, preferences, key resolution, envelope
// export and import, and share summaries. The CLI and the inbox watcher
// talk only to these services.
package services
