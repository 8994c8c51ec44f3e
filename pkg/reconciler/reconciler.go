// Package reconciler 比较磁盘上的图片和文档中的引用，找出未被引用的图片。
//
// 匹配只看文件名：不同子目录下的同名图片视为同一个引用目标，
// 要么全部保留，要么全部列为删除候选。两张内容不同的同名图片中
// 只要有一个文件名被引用，另一张也会被保留，这是已知的局限。
package reconciler

import (
	"github.com/moyu-x/clean-img/internal"
)

// ImageIndex 按文件名分组的图片，保留文件名第一次出现的顺序
type ImageIndex struct {
	order  []string
	groups map[string][]internal.CandidateImage
}

func NewImageIndex() *ImageIndex {
	return &ImageIndex{
		groups: make(map[string][]internal.CandidateImage),
	}
}

// GroupByFilename 按收集顺序建立索引
func GroupByFilename(images []internal.CandidateImage) *ImageIndex {
	index := NewImageIndex()
	for _, img := range images {
		index.Add(img)
	}
	return index
}

func (x *ImageIndex) Add(img internal.CandidateImage) {
	if _, ok := x.groups[img.Filename]; !ok {
		x.order = append(x.order, img.Filename)
	}
	x.groups[img.Filename] = append(x.groups[img.Filename], img)
}

// Filenames 返回所有文件名
func (x *ImageIndex) Filenames() []string {
	return append([]string(nil), x.order...)
}

func (x *ImageIndex) Images(filename string) []internal.CandidateImage {
	return x.groups[filename]
}

// Len 返回不同文件名的数量
func (x *ImageIndex) Len() int {
	return len(x.order)
}

// Count 返回图片总数
func (x *ImageIndex) Count() int {
	n := 0
	for _, imgs := range x.groups {
		n += len(imgs)
	}
	return n
}

// Reconcile 返回文件名不在 referenced 中的全部图片
func Reconcile(index *ImageIndex, referenced internal.ReferenceSet) []internal.CandidateImage {
	var candidates []internal.CandidateImage
	for _, name := range index.order {
		if referenced.Has(name) {
			continue
		}
		candidates = append(candidates, index.groups[name]...)
	}
	return candidates
}
