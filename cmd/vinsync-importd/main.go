package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/vinsync-io/vinsync/cmd/vinsync-importd/app"
)

func main() {
	app.NewApp().Run()
}
