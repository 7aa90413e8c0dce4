package main

import (
	"github.com/cinemind/gateway/internal/app"
	"github.com/cinemind/gateway/internal/config"
)

func main() {
	app.Go(config.Load())
}
