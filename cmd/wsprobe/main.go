// wsprobe is a small developer tool that dials the streaming chat endpoint,
// sends one question and prints the frames as they arrive.
//
// Usage:
//
//	go run ./cmd/wsprobe -addr localhost:8000 -question "Summarize the report" [-chat <chat_id>]
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/url"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"
)

type frame struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Content string `json:"content,omitempty"`
	IsFinal bool   `json:"is_final,omitempty"`
	Answer  string `json:"answer,omitempty"`
	Source  string `json:"source,omitempty"`
	ChatId  string `json:"chat_id,omitempty"`
}

func main() {
	addr := flag.String("addr", "localhost:8000", "server address")
	question := flag.String("question", "What is in the documents?", "question to ask")
	chatId := flag.String("chat", "", "existing chat_id (optional)")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/api/ws/chat"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("dial %s: %v", u.String(), err)
	}
	defer conn.Close()

	req := map[string]string{"question": *question}
	if *chatId != "" {
		req["chat_id"] = *chatId
	}
	if err := conn.WriteJSON(req); err != nil {
		log.Fatalf("send: %v", err)
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("read: %v", err)
		}

		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			log.Printf("unparseable frame: %s", raw)
			continue
		}

		switch f.Type {
		case "typing":
			color.Yellow("… %s", f.Message)
		case "chunk":
			color.White("%s", f.Content)
		case "complete":
			color.Green("\n[complete] chat_id=%s source=%q", f.ChatId, f.Source)
			color.Green("%s", f.Answer)
			return
		case "error":
			color.Red("[error] %s", f.Message)
			return
		default:
			log.Printf("unknown frame type %q: %s", f.Type, raw)
		}
	}
}
