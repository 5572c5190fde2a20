// Command stackpool manipulates a persistent pool of named string stacks.
package main

func main() {
	execute()
}
