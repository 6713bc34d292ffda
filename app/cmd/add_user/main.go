package main

import (
	"flag"
	"fmt"

	"github.com/javedansari81/sunrise-school-management-sub001/app/config"
	"github.com/javedansari81/sunrise-school-management-sub001/app/database"
	"github.com/javedansari81/sunrise-school-management-sub001/app/models"
)

func main() {
	email := flag.String("email", "admin@sunriseschools.in", "user email")
	password := flag.String("password", "", "user password")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "User", "last name")
	flag.Parse()

	if *password == "" {
		fmt.Println("A password is required: -password <value>")
		return
	}

	// Initialize database connection
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}

	user := &models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
	}

	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
