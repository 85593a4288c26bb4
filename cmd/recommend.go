package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/swipe-recommender/internal/api/dto"
	"github.com/spigell/swipe-recommender/internal/recommend"
	"github.com/spigell/swipe-recommender/internal/swipe"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [worker-id]",
	Short: "Print job recommendations for a worker",
	Long:  "Print job recommendations for a worker as JSON. Without a worker id an interactive selector lists the known workers.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRecommend(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().IntP("limit", "l", 0, "maximum number of jobs (default is server.default-limit)")
}

func runRecommend(cmd *cobra.Command, args []string) {
	logger, config := setup()
	ctx := context.Background()

	svc, err := newService(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating the service", zap.Error(err))
	}

	limit := config.Server.DefaultLimit
	if cmd.Flags().Changed("limit") {
		limit, _ = cmd.Flags().GetInt("limit")
	}

	workerID := ""
	if len(args) > 0 {
		workerID = args[0]
	} else {
		workerID, err = selectWorker(ctx, svc)
		if err != nil {
			logger.Fatal("selecting a worker", zap.Error(err))
		}
	}

	recs, err := svc.Recommend(ctx, workerID, limit)
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidWorkerID) || errors.Is(err, recommend.ErrWorkerNotFound) {
			logger.Fatal("exiting", zap.String("worker_id", workerID), zap.String("reason", err.Error()))
		}
		logger.Fatal("recommending jobs", zap.Error(err))
	}

	logger.Info("recommended jobs", zap.String("worker_id", workerID), zap.Int("count", len(recs)))

	if err := printJSON(dto.FromRecommendations(recs)); err != nil {
		logger.Fatal("printing recommendations", zap.Error(err))
	}
}

type workerLister interface {
	Workers(ctx context.Context) (*swipe.Workers, error)
}

func selectWorker(ctx context.Context, svc workerLister) (string, error) {
	workers, err := svc.Workers(ctx)
	if err != nil {
		return "", fmt.Errorf("get workers: %w", err)
	}
	if workers.Len() == 0 {
		return "", errors.New("no workers available")
	}

	items := workerLabels(workers)

	workerPrompt := promptui.Select{
		Label: "Choose a worker and press ENTER",
		Items: items,
		Size:  10,
	}

	_, selected, err := workerPrompt.Run()
	if err != nil {
		return "", err
	}

	return strings.Split(selected, " ")[0], nil
}

func workerLabels(workers *swipe.Workers) []string {
	items := make([]string, 0, workers.Len())
	for _, w := range workers.Items {
		if w == nil {
			continue
		}
		items = append(items, w.Label())
	}
	return items
}

func printJSON(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(pretty))
	return err
}
