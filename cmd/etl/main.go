// Command etl imports barista back-office spreadsheets from the command line.
package main

func main() {
	Execute()
}
