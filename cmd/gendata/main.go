// Command gendata generates a synthetic clothing e-commerce order workbook
// for exercising the analytics service.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"

	"erpviz/dataset"
)

type product struct {
	name      string
	spuPrefix string
	minPrice  float64
	maxPrice  float64
}

var clothingProducts = []product{
	{"纯棉圆领T恤", "TS", 89, 299},
	{"修身牛仔裤", "JP", 199, 599},
	{"连帽卫衣", "HD", 159, 459},
	{"休闲衬衫", "SH", 129, 399},
	{"运动裤", "SP", 99, 359},
	{"羽绒服", "DJ", 399, 1299},
	{"针织衫", "KN", 149, 499},
	{"西装外套", "BZ", 399, 999},
	{"休闲裤", "CP", 139, 449},
	{"连衣裙", "DR", 179, 699},
}

var (
	colors    = []string{"黑色", "白色", "蓝色", "灰色", "红色", "绿色", "黄色", "紫色", "粉色", "米色"}
	sizes     = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}
	stores    = []string{"时尚潮流旗舰店", "优品服饰专营店", "都市风尚官方店", "经典服装品牌店", "时代服饰旗舰店"}
	platforms = []string{"淘宝", "天猫", "京东", "拼多多", "抖音"}
	cities    = []string{"广州市", "深圳市", "杭州市", "成都市", "武汉市", "南京市", "长沙市", "西安市", "青岛市", "苏州市"}

	// Weighted toward completed orders, matching real order books.
	statuses         = []string{"已完成", "已完成", "已完成", "已完成", "已完成", "已完成", "待发货", "已发货", "已取消"}
	subOrderStatuses = []string{"已完成", "已完成", "已完成", "已完成", "已发货", "待发货"}
	refundStatuses   = []string{"无退款", "无退款", "无退款", "无退款", "无退款", "无退款", "无退款", "无退款", "部分退款", "全额退款"}
	giftFlags        = []string{"否", "否", "否", "否", "否", "否", "否", "否", "否", "是"}

	surnames   = []string{"王", "李", "张", "刘", "陈", "杨", "黄", "赵", "周", "吴"}
	givenNames = []string{"伟", "芳", "娜", "敏", "静", "磊", "军", "洋", "勇", "艳", "杰", "涛"}
)

var header = []string{
	"id", "internal_order_number", "online_order_number", "store_name",
	"full_channel_user_id", "shipping_date", "payment_date", "payable_amount",
	"paid_amount", "status", "consignee", "spu", "order_time", "province",
	"city", "platform", "sub_order_number", "online_sub_order_number",
	"original_online_order_number", "sku", "quantity", "unit_price",
	"product_name", "color_and_spec", "product_amount", "original_price",
	"is_gift", "sub_order_status", "refund_status", "registered_quantity",
	"actual_refund_quantity",
}

const timeLayout = "2006-01-02 15:04:05"

func main() {
	var (
		records = flag.Int("n", 1000, "number of order records to generate")
		output  = flag.String("o", "erp_order_data.xlsx", "output workbook path")
		seed    = flag.Int64("seed", 42, "random seed, for reproducible datasets")
	)
	flag.Parse()

	gofakeit.Seed(*seed)

	if err := writeWorkbook(*output, generate(*records)); err != nil {
		slog.Error("failed to write workbook", "error", err)
		os.Exit(1)
	}
	slog.Info("workbook written", "path", *output, "records", *records)
}

func generate(n int) [][]interface{} {
	provinces := dataset.Provinces()

	// A fixed user pool so repeat purchases occur.
	users := make([]string, 200)
	for i := range users {
		users[i] = fmt.Sprintf("U%08d", i+1)
	}

	now := time.Now()
	rows := make([][]interface{}, 0, n)
	for i := 1; i <= n; i++ {
		p := clothingProducts[gofakeit.Number(0, len(clothingProducts)-1)]
		color := gofakeit.RandomString(colors)
		size := gofakeit.RandomString(sizes)

		orderTime := gofakeit.DateRange(now.AddDate(-1, 0, 0), now)
		paymentDate := orderTime.Add(time.Duration(gofakeit.Number(1, 120)) * time.Minute)
		shippingDate := paymentDate.AddDate(0, 0, gofakeit.Number(1, 3))

		originalPrice := round2(gofakeit.Float64Range(p.minPrice, p.maxPrice))
		unitPrice := round2(originalPrice * gofakeit.Float64Range(0.6, 1.0))
		quantity := weightedQuantity()
		productAmount := round2(unitPrice * float64(quantity))
		shippingFee := float64(gofakeit.RandomInt([]int{0, 0, 0, 5, 10, 15}))
		payableAmount := round2(productAmount + shippingFee)

		spu := fmt.Sprintf("%s%06d", p.spuPrefix, gofakeit.Number(0, 999999))
		sku := fmt.Sprintf("%s-%s-%s", spu, string([]rune(color)[:1]), size)
		onlineOrder := fmt.Sprintf("ON%015d", gofakeit.Number(0, 999999999))

		refund := gofakeit.RandomString(refundStatuses)
		var registered, refunded int
		switch refund {
		case "部分退款":
			registered = gofakeit.Number(1, quantity)
			refunded = registered
		case "全额退款":
			registered = quantity
			refunded = quantity
		}

		rows = append(rows, []interface{}{
			i,
			fmt.Sprintf("IO%s%06d", now.Format("20060102"), i),
			onlineOrder,
			gofakeit.RandomString(stores),
			gofakeit.RandomString(users),
			shippingDate.Format(timeLayout),
			paymentDate.Format(timeLayout),
			payableAmount,
			payableAmount,
			gofakeit.RandomString(statuses),
			gofakeit.RandomString(surnames) + gofakeit.RandomString(givenNames),
			spu,
			orderTime.Format(timeLayout),
			gofakeit.RandomString(provinces),
			gofakeit.RandomString(cities),
			gofakeit.RandomString(platforms),
			fmt.Sprintf("SO%015d", gofakeit.Number(0, 999999999)),
			fmt.Sprintf("OSO%015d", gofakeit.Number(0, 999999999)),
			onlineOrder,
			sku,
			quantity,
			unitPrice,
			p.name,
			color + "/" + size,
			productAmount,
			originalPrice,
			gofakeit.RandomString(giftFlags),
			gofakeit.RandomString(subOrderStatuses),
			refund,
			registered,
			refunded,
		})
	}
	return rows
}

// weightedQuantity mirrors real basket sizes: mostly single-item orders.
func weightedQuantity() int {
	v, err := gofakeit.Weighted(
		[]interface{}{1, 2, 3, 4, 5},
		[]float32{60, 20, 10, 7, 3},
	)
	if err != nil {
		return 1
	}
	return v.(int)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func writeWorkbook(path string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, name := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	lastCol, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol, headerStyle); err != nil {
		return err
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
