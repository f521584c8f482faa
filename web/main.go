package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-motion-raytracer/pkg/scene"
	"github.com/df07/go-motion-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", scene.DefaultScenesDir, "Directory of JSON scene files")
	flag.Parse()

	webServer := server.NewServer(*port, *scenesDir)

	log.Printf("Motion Raytracer Web Server")
	log.Printf("Stream an animation with http://localhost:%d/api/render?scene=sunset&frames=4&width=200", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
