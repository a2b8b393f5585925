package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(songCmd)
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the key table as JSON",
	Long:  `Prints one [key, note, samples] triple per keyboard key, in keyboard order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		synth, err := newSynthesizer()
		if err != nil {
			return err
		}
		table, err := synth.BuildKeyTable()
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(table)
	},
}

var songCmd = &cobra.Command{
	Use:   "song",
	Short: "Print the demonstration song as JSON",
	Long:  `Prints the sample sequences of the demonstration song, one array per item.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		synth, err := newSynthesizer()
		if err != nil {
			return err
		}
		song, err := synth.BuildDefaultSong()
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(song)
	},
}
