// Command createadmin provisions an administrator account interactively,
// prompting for email, username, name and password (twice).
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/models"
	"github.com/ZhatkinVyacheslav/foodgram-st/utils"

	"golang.org/x/term"
)

func main() {
	config.InitDB()

	in := bufio.NewReader(os.Stdin)

	email := prompt(in, "Email", true)
	username := prompt(in, "Username", true)
	firstName := prompt(in, "First name", false)
	lastName := prompt(in, "Last name", false)

	var password string
	for {
		password = promptPassword("Password")
		confirm := promptPassword("Password (again)")
		if password == confirm {
			break
		}
		fmt.Fprintln(os.Stderr, "Error: passwords do not match, try again.")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := models.User{
		Email:     email,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Password:  hashed,
		IsAdmin:   true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Printf("Superuser %s created.\n", admin.Email)
}

func prompt(in *bufio.Reader, label string, required bool) string {
	for {
		fmt.Printf("%s: ", label)
		line, err := in.ReadString('\n')
		if err != nil {
			log.Fatalf("input aborted: %v", err)
		}
		line = strings.TrimSpace(line)
		if line != "" || !required {
			return line
		}
	}
}

func promptPassword(label string) string {
	fmt.Printf("%s: ", label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Fatalf("input aborted: %v", err)
	}
	return strings.TrimSpace(string(raw))
}
