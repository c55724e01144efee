// Admin CLI for inspecting the database: users, markets, feed health and
// unread notification counts.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/conectapro/backend/internal/database"
	"github.com/conectapro/backend/internal/models"
	"github.com/conectapro/backend/internal/notifications"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	root := &cobra.Command{
		Use:   "conectactl",
		Short: "Admin CLI for the Conecta backend",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return database.Initialize()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return database.Close()
		},
	}

	root.AddCommand(usersCmd(), marketsCmd(), unreadCmd(), statsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users with their profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			var users []models.User
			if err := database.DB.Order("created_at ASC").Find(&users).Error; err != nil {
				return err
			}
			for _, u := range users {
				var profile models.Profile
				name := "(no profile)"
				if err := database.DB.Where("user_id = ?", u.ID).First(&profile).Error; err == nil {
					name = profile.FullName
				}
				fmt.Printf("%s  %-30s %s\n", u.ID, u.Email, name)
			}
			fmt.Printf("%d users\n", len(users))
			return nil
		},
	}
}

func marketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markets",
		Short: "List markets with post and subscriber counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var markets []models.Market
			if err := database.DB.Order("name ASC").Find(&markets).Error; err != nil {
				return err
			}
			for _, m := range markets {
				var posts, subscribers int64
				database.DB.Model(&models.Post{}).Where("market_id = ?", m.ID).Count(&posts)
				database.DB.Model(&models.UserMarket{}).Where("market_id = ?", m.ID).Count(&subscribers)
				fmt.Printf("%3d  %-20s %5d posts  %5d subscribers\n", m.ID, m.Name, posts, subscribers)
			}
			return nil
		},
	}
}

func unreadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unread <user-id>",
		Short: "Show a user's unread notification count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := notifications.NewService(database.DB)
			count, err := svc.UnreadCount(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("unread notifications: %d\n", count)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show table row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts := []struct {
				name  string
				model interface{}
			}{
				{"users", &models.User{}},
				{"profiles", &models.Profile{}},
				{"posts", &models.Post{}},
				{"post_likes", &models.PostLike{}},
				{"post_comments", &models.PostComment{}},
				{"saved_posts", &models.SavedPost{}},
				{"connections", &models.Connection{}},
				{"notifications", &models.Notification{}},
				{"jobs", &models.Job{}},
			}
			for _, c := range counts {
				var n int64
				if err := database.DB.Model(c.model).Count(&n).Error; err != nil {
					return err
				}
				fmt.Printf("%-15s %d\n", c.name, n)
			}
			return nil
		},
	}
}
