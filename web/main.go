package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/df07/go-weekend-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of YAML scenes to offer")
	flag.Parse()
	defer glog.Flush()

	webServer := server.NewServer(*port, *scenesDir)

	glog.Infof("Weekend Raytracer Web Server")
	glog.Infof("Try http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		glog.Exitf("Error starting server: %v", err)
	}
}
