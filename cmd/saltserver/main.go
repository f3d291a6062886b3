package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/zklogin/internal/buildinfo"
	"github.com/dmitrijs2005/zklogin/internal/saltserver"
	"github.com/dmitrijs2005/zklogin/internal/saltserver/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := saltserver.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
