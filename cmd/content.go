package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vagalivre/vagalivre/internal/content"
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show news for candidates",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(titleStyle.Render("Notícias"))
		for _, article := range content.News() {
			cmd.Printf("\n%s\n", labelStyle.Render(article.Title))
			cmd.Printf("%s\n", article.Description)
			cmd.Printf("%s — %s\n", article.Source, article.Link)
		}
	},
}

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "About this platform",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(content.About())
	},
}

var educationCmd = &cobra.Command{
	Use:   "education",
	Short: "Educational guides for candidates",
	Run: func(cmd *cobra.Command, args []string) {
		for _, guide := range content.Guides() {
			cmd.Println(titleStyle.Render(guide.Title))
			for _, topic := range guide.Topics {
				cmd.Printf("  • %s\n", topic)
			}
			cmd.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(aboutCmd)
	rootCmd.AddCommand(educationCmd)
}
