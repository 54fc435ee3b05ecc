// Command songscribbler stores song lyrics and chords and scrolls through
// them on a terminal screen.
package main

import "github.com/songscribbler/songscribbler/internal/cli"

func main() {
	cli.Execute()
}
