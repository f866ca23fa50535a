package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"swout/model"
)

var sampleLines = []model.OutputLine{
	{JanCode: "4902370553031", Qty: 2, UnitPrice: 3000, Note: "A1"},
	{JanCode: "", Qty: 1, UnitPrice: 4999, Note: "A2"},
}

func TestWriteCSV(t *testing.T) {
	data := WriteCSV(sampleLines)

	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	body := string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	rows := strings.Split(body, "\r\n")
	require.Len(t, rows, 4) // ヘッダー + 2行 + 末尾の空要素

	assert.Equal(t, "存货编码,仓库,数量,单价,SN码,备注", rows[0])
	assert.Equal(t, `"4902370553031","","2","3000","","A1"`, rows[1])
	assert.Equal(t, `"","","1","4999","","A2"`, rows[2])
	assert.Equal(t, "", rows[3])
}

func TestWriteCSVQuoting(t *testing.T) {
	data := WriteCSV([]model.OutputLine{
		{JanCode: `AB"C`, Qty: 1, UnitPrice: 0.5, Note: "N,1"},
	})

	body := string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, body, `"AB""C","","1","0.5","","N,1"`)
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(sampleLines)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "4902370553031", rows[1][0])
	assert.Equal(t, "2", rows[1][2])
	assert.Equal(t, "3000", rows[1][3])
	assert.Equal(t, "A1", rows[1][5])
}
