// Command pontolink reconciles spreadsheet references against files on disk.
package main
