// Command qhfctl recovers conversations from QIP .qhf chat-history files.
package main

func main() {
	execute()
}
