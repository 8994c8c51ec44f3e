package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/moyu-x/clean-img/internal/app"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clean-img <markdown-dir> <image-dir>",
	Short: "删除未被 Markdown 引用的图片工具 (支持 Obsidian 语法)",
	Long: `clean-img 扫描 Markdown 目录中的文档，找出图片目录中没有被任何文档引用的图片。

支持的引用语法:
- Markdown 图片: ![alt](path "title")
- HTML 图片标签: <img src="path">
- Obsidian/Wiki 嵌入: ![[path|200]] 或 [[path]]

图片只按文件名匹配，不同子目录下的同名图片视为同一张。
默认只预览，加上 --delete 并输入 yes 确认后才会真正删除。`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	deleteMode, _ := cmd.Flags().GetBool("delete")
	verbose, _ := cmd.Flags().GetBool("verbose")
	useTUI, _ := cmd.Flags().GetBool("tui")
	noJournal, _ := cmd.Flags().GetBool("no-journal")
	workers, _ := cmd.Flags().GetInt("workers")

	opts := &app.CleanOptions{
		DocDir:     args[0],
		ImgDir:     args[1],
		Delete:     deleteMode,
		Verbose:    verbose,
		TUI:        useTUI,
		NoJournal:  noJournal,
		Workers:    workers,
		ConfigFile: cfgFile,
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
	}

	_, err := app.RunClean(opts)
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件 (默认 $HOME/.clean-img/config.yaml)")

	rootCmd.Flags().Bool("delete", false, "【危险】如果不加此参数，仅打印将要删除的文件。加上此参数将真正执行删除。")
	rootCmd.Flags().BoolP("verbose", "v", false, "显示调试日志")
	rootCmd.Flags().Bool("tui", false, "使用交互界面确认删除")
	rootCmd.Flags().Bool("no-journal", false, "不记录删除日志")
	rootCmd.Flags().IntP("workers", "w", 0, "并发扫描文档的线程数（默认读取配置）")
}
