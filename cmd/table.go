/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fullstack-app/apiserver/config"
	"github.com/fullstack-app/apiserver/internal/store"
	"github.com/spf13/cobra"
)

// tableCmd represents the table command.
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Manage the backing key-value table",
}

var tableCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the single table and its secondary index",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}

		client, err := store.NewDynamoClient(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("init store client failed: %w", err)
		}

		_, err = client.CreateTable(cmd.Context(), &dynamodb.CreateTableInput{
			TableName:   aws.String(cfg.Database.Table),
			BillingMode: ddbtypes.BillingModePayPerRequest,
			AttributeDefinitions: []ddbtypes.AttributeDefinition{
				{AttributeName: aws.String("hk"), AttributeType: ddbtypes.ScalarAttributeTypeS},
				{AttributeName: aws.String("sk"), AttributeType: ddbtypes.ScalarAttributeTypeS},
				{AttributeName: aws.String("sk2"), AttributeType: ddbtypes.ScalarAttributeTypeS},
			},
			KeySchema: []ddbtypes.KeySchemaElement{
				{AttributeName: aws.String("hk"), KeyType: ddbtypes.KeyTypeHash},
				{AttributeName: aws.String("sk"), KeyType: ddbtypes.KeyTypeRange},
			},
			GlobalSecondaryIndexes: []ddbtypes.GlobalSecondaryIndex{
				{
					IndexName: aws.String(cfg.Database.IndexName),
					KeySchema: []ddbtypes.KeySchemaElement{
						{AttributeName: aws.String("sk2"), KeyType: ddbtypes.KeyTypeHash},
						{AttributeName: aws.String("sk"), KeyType: ddbtypes.KeyTypeRange},
					},
					Projection: &ddbtypes.Projection{ProjectionType: ddbtypes.ProjectionTypeAll},
				},
			},
		})
		if err != nil {
			var inUse *ddbtypes.ResourceInUseException
			if errors.As(err, &inUse) {
				return nil
			}
			return fmt.Errorf("create table failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.AddCommand(tableCreateCmd)
}
