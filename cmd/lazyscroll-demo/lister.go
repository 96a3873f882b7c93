package main

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gdamore/tcell/v3"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xqrs/lazyscroll"
)

const headerEvery = 10

// demoLister produces count items of fake prose. Item text depends only on the
// seed and the index, so an item looks the same every time it is realized.
type demoLister struct {
	count   int
	seed    int64
	fixed   bool
	headers bool

	texts *lru.Cache[int, []string]
}

func newDemoLister(count int, seed int64, cacheSize int, fixed, headers bool) (*demoLister, error) {
	texts, err := lru.New[int, []string](max(cacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("creating text cache: %w", err)
	}
	return &demoLister{
		count:   count,
		seed:    seed,
		fixed:   fixed,
		headers: headers,
		texts:   texts,
	}, nil
}

// paragraphCount is the number of paragraphs of item index: every fourth and
// every seventh item get one more.
func paragraphCount(index int) int {
	n := 1
	if index%4 == 0 {
		n++
	}
	if index%7 == 0 {
		n++
	}
	return n
}

func (l *demoLister) paragraphs(index int) []string {
	if p, ok := l.texts.Get(index); ok {
		return p
	}
	faker := gofakeit.New(l.seed + int64(index))
	p := []string{fmt.Sprintf("This is item %d: %s", index, faker.Sentence(6))}
	if index%4 == 0 {
		p = append(p, "Some items have extra stuff: "+faker.Sentence(12))
	}
	if index%7 == 0 {
		p = append(p, "Some items have even more extra stuff: "+faker.Paragraph(1, 3, 10, " "))
	}
	l.texts.Add(index, p)
	return p
}

func (l *demoLister) Count() int {
	return l.count
}

func (l *demoLister) Item(index int) lazyscroll.ListItem {
	b := lazyscroll.NewLineBuilder()
	for i, p := range l.paragraphs(index) {
		style := tcell.StyleDefault.Foreground(lazyscroll.Styles.PrimaryTextColor)
		if i > 0 {
			b.NewLine()
			style = tcell.StyleDefault.Foreground(lazyscroll.Styles.SecondaryTextColor)
		}
		b.Write(p, style)
	}
	return lazyscroll.NewTextItem(b.Finish()...).SetWrap(!l.fixed)
}

// HeightHint is exact in fixed mode, where items are not wrapped, and a lower
// bound otherwise.
func (l *demoLister) HeightHint(index int) int {
	return paragraphCount(index)
}

func (l *demoLister) FixedHeight(int) bool {
	return l.fixed
}

func (l *demoLister) Header(index int) lazyscroll.ListItem {
	if !l.headers || index%headerEvery != 0 {
		return nil
	}
	style := tcell.StyleDefault.Foreground(lazyscroll.Styles.TertiaryTextColor).Bold(true)
	header := lazyscroll.NewTextItemString(fmt.Sprintf("#%d", index), style).SetWrap(false)
	// Keep a blank column between the header and its item.
	header.SetBorderPadding(0, 0, 0, 1)
	return header
}

func (l *demoLister) Release(int, lazyscroll.ListItem, lazyscroll.ListItem) {
	itemsReleased.Inc()
}

var (
	_ lazyscroll.ItemLister    = &demoLister{}
	_ lazyscroll.HeightHinter  = &demoLister{}
	_ lazyscroll.FixedHeighter = &demoLister{}
	_ lazyscroll.HeaderLister  = &demoLister{}
	_ lazyscroll.ItemReleaser  = &demoLister{}
)
