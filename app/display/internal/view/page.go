package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/conf"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/usecase"
)

const defaultPollInterval = 800 * time.Millisecond

// Options 页面渲染选项
type Options struct {
	ProviderLabel string
	TableColumns  []string
	PollInterval  time.Duration
	ChartWidth    int
	ChartHeight   int
}

func NewOptions(ui *conf.UI) Options {
	opts := Options{
		ProviderLabel: conf.DefaultProviderLabel,
		TableColumns:  DefaultColumns,
		PollInterval:  defaultPollInterval,
		ChartWidth:    720,
		ChartHeight:   320,
	}
	if ui == nil {
		return opts
	}
	if ui.ProviderLabel != "" {
		opts.ProviderLabel = ui.ProviderLabel
	}
	if len(ui.TableColumns) > 0 {
		opts.TableColumns = ui.TableColumns
	}
	opts.PollInterval = conf.Duration(ui.PollInterval, defaultPollInterval)
	if ui.ChartWidth > 0 {
		opts.ChartWidth = int(ui.ChartWidth)
	}
	if ui.ChartHeight > 0 {
		opts.ChartHeight = int(ui.ChartHeight)
	}
	return opts
}

type LegendItem struct {
	Name  string
	Color string
}

// ChartData 图表数据的文字版本，每个年份一行
type ChartData struct {
	Headers []string
	Rows    [][]string
}

// Page 工作区的视图模型
type Page struct {
	Phase   usecase.Phase
	Loading bool
	Query   string
	Input   usecase.QueryInput

	Error     string
	ErrorKind string

	Summary   *Summary
	Chart     *Chart
	ChartURL  string
	Legend    []LegendItem
	ChartData *ChartData
	Table     *Table

	PollMillis int64
}

// BuildPage 根据页面状态生成视图模型
func BuildPage(st usecase.State, opts Options) *Page {
	p := &Page{
		Phase:      st.Phase(),
		PollMillis: opts.PollInterval.Milliseconds(),
	}

	switch s := st.(type) {
	case usecase.Loading:
		p.Loading = true
		p.Query = s.Query
	case usecase.Failure:
		p.Query = s.Query
		p.Error = s.Message
		switch s.Kind {
		case usecase.FailureAPI:
			p.ErrorKind = "api"
		case usecase.FailureNetwork:
			p.ErrorKind = "network"
		}
	case usecase.Success:
		p.Query = s.Query
		p.Summary = BuildSummary(s.Data, opts.ProviderLabel)
		if s.Data.HasChart() {
			p.Chart = BuildChart(s.Data.Chart)
		}
		if p.Chart != nil {
			p.ChartURL = fmt.Sprintf("/chart.svg?seq=%d", s.Seq)
			for _, series := range p.Chart.Series {
				p.Legend = append(p.Legend, LegendItem{Name: series.Name, Color: series.Color})
			}
			p.ChartData = p.Chart.Data()
		}
		if s.Data.HasTable() {
			p.Table = BuildTable(s.Data.Table, opts.TableColumns)
		}
	}
	p.Input.Loading = p.Loading
	return p
}

// Data 按年份列出每条折线的取值，缺失显示为 "-"
func (c *Chart) Data() *ChartData {
	d := &ChartData{Headers: []string{"Year"}}
	for _, s := range c.Series {
		d.Headers = append(d.Headers, s.Name)
	}
	for _, y := range c.Years {
		row := []string{strconv.Itoa(y)}
		for _, s := range c.Series {
			cell := "-"
			for _, p := range s.Points {
				if p.Year == y {
					cell = FormatCurrency(p.Value)
				}
			}
			row = append(row, cell)
		}
		d.Rows = append(d.Rows, row)
	}
	return d
}
