// Command travel-booking is the entry point for the travel booking API.
// Its sole responsibility is wiring dependencies together; no business logic
// belongs here. See root.go for the available subcommands.
package main

func main() {
	execute()
}
