/*
Copyright © 2026 imposterparty
*/

package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
)

// statusPage renders the landing page the backend serves over plain HTTP:
// no game semantics, just liveness info for whoever opens the server URL
// in a browser.
func statusPage(cfg *Config, reg *Registry) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	b.WriteString(getFavicon())
	b.WriteString(`<title>Imposter Game - Backend Server</title>`)
	b.WriteString(`<style>`)
	b.WriteString(`body{font-family:system-ui,-apple-system,sans-serif;background:#1a1525;color:#fff;display:flex;align-items:center;justify-content:center;height:100vh;margin:0;}`)
	b.WriteString(`.card{background:rgba(74,63,92,.4);border:1px solid rgba(168,85,247,.3);border-radius:20px;padding:2rem;text-align:center;max-width:540px;}`)
	b.WriteString(`h1{background:linear-gradient(135deg,#d8b4fe,#93c5fd);-webkit-background-clip:text;-webkit-text-fill-color:transparent;}`)
	b.WriteString(`.status{color:#86efac;font-weight:600;margin-bottom:1rem;}`)
	b.WriteString(`.grid{display:grid;grid-template-columns:1fr 1fr;gap:.75rem;margin-top:1rem;}`)
	b.WriteString(`.cell{background:rgba(74,63,92,.3);border:1px solid rgba(125,109,150,.3);border-radius:12px;padding:.875rem;}`)
	b.WriteString(`.label{font-size:.75rem;color:#d4cde0;text-transform:uppercase;}`)
	b.WriteString(`.value{font-size:1.25rem;font-weight:700;color:#c084fc;}`)
	b.WriteString(`</style></head><body><div class="card">`)
	b.WriteString(`<h1>Imposter Game</h1>`)
	b.WriteString(`<div class="status">Backend Server Running</div>`)
	b.WriteString(`<p>WebSocket server is active and ready to handle game connections. Players can now join rooms and start playing!</p>`)
	b.WriteString(`<div class="grid">`)
	b.WriteString(fmt.Sprintf(`<div class="cell"><div class="label">Port</div><div class="value">%d</div></div>`, cfg.port))
	b.WriteString(`<div class="cell"><div class="label">Protocol</div><div class="value">WS</div></div>`)
	b.WriteString(`<div class="cell"><div class="label">Status</div><div class="value">&#10003; Online</div></div>`)
	b.WriteString(fmt.Sprintf(`<div class="cell"><div class="label">Active Rooms</div><div class="value">%d</div></div>`, reg.count()))
	b.WriteString(`</div></div></body></html>`)

	return b.String()
}

func serveStatusPage(cfg *Config, reg *Registry, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(statusPage(cfg, reg)))
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: *
Disallow: /`

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- err

			return
		}
	}
}
