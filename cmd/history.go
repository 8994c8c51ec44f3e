package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/clean-img/internal/app"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "查看删除日志",
	Long: `列出删除日志中记录的文件，包括删除时间、运行 ID、路径、大小和文件类型。
删除日志只用于事后追查，不会影响下一次扫描的结果。`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetString("run")

	_, err := app.RunHistory(&app.HistoryOptions{
		Limit:      limit,
		RunID:      runID,
		ConfigFile: cfgFile,
		Out:        cmd.OutOrStdout(),
	})
	return err
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "最多显示的记录数，0 表示全部")
	historyCmd.Flags().String("run", "", "只显示指定运行 ID 的记录")

	rootCmd.AddCommand(historyCmd)
}
