// Command stockroom tracks uniform stock across stores.
package main

import "github.com/mesh-intelligence/stockroom/internal/cli"

func main() {
	cli.Execute()
}
