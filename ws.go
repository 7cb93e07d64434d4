/*
	livemap, live tile renderer for block game maps
	Copyright (C) 2022 Maxim Zhuchkov

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.

	Contact me via mail: q3.max.2011@yandex.ru or Discord: MaX#6717
*/

package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

func wsClientHandlerWrapper(router *mapEventRouter, exitchan <-chan struct{}) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		wsClientHandler(w, r, router, exitchan)
	}
}

func wsClientHandler(w http.ResponseWriter, r *http.Request, router *mapEventRouter, exitchan <-chan struct{}) {
	upgrader := websocket.Upgrader{
		HandshakeTimeout: 2 * time.Second,
		Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
			log.Printf("Websocket error: %v %v", status, reason.Error())
		},
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
		EnableCompression: true,
	}
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Print("Websocket upgrade error:", err)
		return
	}
	defer c.Close()
	errChan := make(chan error, 1)
	go func() {
		for {
			_, _, err := c.ReadMessage()
			if err != nil {
				errChan <- err
				return
			}
		}
	}()
	msgc := router.Connect()
	defer router.Disconnect(msgc)
	for {
		select {
		case m, ok := <-msgc:
			if !ok {
				return
			}
			b, err := json.Marshal(m)
			if err != nil {
				log.Printf("Failed to marshal event: %v", err)
				return
			}
			c.SetWriteDeadline(time.Now().Add(5 * time.Second))
			err = c.WriteMessage(websocket.TextMessage, b)
			if err != nil {
				return
			}
		case <-errChan:
			return
		case <-exitchan:
			c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
			return
		}
	}
}
