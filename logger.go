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
	"io"
	"log"
	"os"

	"github.com/gorilla/handlers"
	"github.com/natefinch/lumberjack"
)

func customLogger(_ io.Writer, params handlers.LogFormatterParams) {
	r := params.Request
	ip := r.Header.Get("CF-Connecting-IP")
	if ip == "" {
		ip = r.RemoteAddr
	}
	geo := r.Header.Get("CF-IPCountry")
	if geo == "" {
		geo = "??"
	}
	ua := r.Header.Get("user-agent")
	log.Println("["+geo+" "+ip+"]", r.Method, params.StatusCode, r.RequestURI, "["+ua+"]", params.Size)
}

// setupLogging points standard logger at rotated log file and stdout,
// returned writer must be closed on exit.
func setupLogging(path string) io.Closer {
	lj := &lumberjack.Logger{
		Filename: path,
		MaxSize:  10,
		Compress: true,
	}
	log.SetOutput(io.MultiWriter(lj, os.Stdout))
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	return lj
}

// componentLogger shares process output with a prefix
func componentLogger(name string) *log.Logger {
	return log.New(log.Writer(), "["+name+"] ", log.Flags())
}
