// chat-cli is a small terminal chat client, handy for exercising the
// realtime path against a running server from two shells.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/skyps2003/Freelancer/internal/chatclient"
	"github.com/skyps2003/Freelancer/internal/models"
)

func main() {
	server := flag.String("server", "http://localhost:5000", "server base URL")
	wsURL := flag.String("ws", "ws://localhost:5000/ws/chat", "chat websocket URL")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	partner := flag.String("partner", "", "user ID to chat with")
	flag.Parse()

	if *email == "" || *password == "" || *partner == "" {
		flag.Usage()
		os.Exit(1)
	}

	token, user, err := login(*server, *email, *password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.ID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := &chatclient.HTTPAPI{BaseURL: *server + "/api", Token: token}
	socket, err := chatclient.DialSocket(ctx, *wsURL, token, user.ID)
	if err != nil {
		log.Fatalf("Socket connect failed: %v", err)
	}
	defer socket.Close()

	client := chatclient.New(user.ID, api, socket)
	client.OnMessagesChanged = func() {
		msgs := client.Messages()
		if len(msgs) == 0 {
			return
		}
		last := msgs[len(msgs)-1]
		who := "them"
		if last.Sender == user.ID {
			who = "you"
		}
		status := ""
		switch last.Status {
		case chatclient.StatusPending:
			status = " (sending...)"
		case chatclient.StatusFailed:
			status = " (failed)"
		}
		fmt.Printf("[%s] %s%s\n", who, last.Content, status)
	}

	if err := client.SelectConversation(ctx, *partner); err != nil {
		log.Fatalf("Failed to load conversation: %v", err)
	}

	go func() {
		if err := socket.Listen(ctx, client); err != nil && ctx.Err() == nil {
			log.Printf("Socket closed: %v", err)
		}
	}()

	fmt.Println("Type a message and press enter (ctrl-d to quit):")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := client.SendMessage(ctx, text); err != nil {
			log.Printf("Send failed: %v", err)
		}
	}
}

func login(server, email, password string) (string, *models.User, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(server+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("login rejected with status %d", resp.StatusCode)
	}
	var out struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}
