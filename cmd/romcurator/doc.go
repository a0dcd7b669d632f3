// Command romcurator is the catalog resolution CLI: it scores game titles
// against DAT entries, auto-links the unambiguous matches, and gives
// operators the curation, platform-alias, and reporting commands around
// that.
package main
