// Package main hosts the lexis CLI.
//
// Each subcommand builds a corpus from one directory of text files and prints
// a single analysis: basic counts, top terms, the document similarity matrix,
// TF-IDF for chosen terms, a vocabulary sample or stopword suggestions. The
// export command writes the full report to a SQLite database instead. That
// database is output only; corpora are always rebuilt from the text files.
//
// Configuration and logging are resolved once per invocation in context.go;
// the analyses themselves live in pkg/lexis.
package main
