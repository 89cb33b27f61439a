package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motorline/partsbot/internal/enquiry"
)

func newEnquiryCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "enquiry <reference>",
		Short: "Look up a submitted enquiry by reference number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnquiry(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "partsbot.yaml", "path to config file")
	return cmd
}

func runEnquiry(cmd *cobra.Command, configPath, ref string) error {
	_, gormDB, err := openFromConfig(configPath)
	if err != nil {
		return err
	}
	store, err := enquiry.NewStore(gormDB)
	if err != nil {
		return err
	}

	form, err := store.FindByReference(ref)
	if err != nil {
		return err
	}
	if form == nil {
		return fmt.Errorf("no enquiry with reference %s", ref)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reference:  %s\n", form.ReferenceNumber)
	fmt.Fprintf(out, "Item:       %s (%s)\n", form.ItemName, form.ItemType)
	if form.ModelName != "" {
		fmt.Fprintf(out, "Model:      %s\n", form.ModelName)
	}
	fmt.Fprintf(out, "Contact:    %s (%s)\n", form.ContactName, form.ContactType)
	fmt.Fprintf(out, "Customer:   %s <%s> %s\n", form.CustomerName, form.Email, form.Mobile)
	if form.Query != "" {
		fmt.Fprintf(out, "Question:   %s\n", form.Query)
	}
	fmt.Fprintf(out, "Status:     %s\n", form.Status)
	fmt.Fprintf(out, "Submitted:  %s\n", form.CreatedAt.Format("2 Jan 2006 15:04"))
	return nil
}
