package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/imprint/fonts"
	"github.com/ByLCY/imprint/render"
	canvasdriver "github.com/ByLCY/imprint/renderer/canvas"
	"github.com/ByLCY/imprint/schema"
)

func main() {
	templatePath := flag.String("template", "examples/template.json", "模板 JSON 路径")
	inputsPath := flag.String("inputs", "", "输入记录 JSON 路径（数组，可为空）")
	output := flag.String("out", "output/out.pdf", "PDF 输出路径")
	planPath := flag.String("plan", "", "排版计划调试 JSON 输出路径")
	fontDir := flag.String("fontdir", "", "字体目录（按文件名注册 .ttf/.otf）")
	baseDir := flag.String("basedir", "", "图片资源根目录")
	flag.Parse()

	if err := run(*templatePath, *inputsPath, *output, *planPath, *fontDir, *baseDir); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

// run 串联模板解析、输入解析与渲染。
func run(templatePath, inputsPath, outputPath, planPath, fontDir, baseDir string) error {
	tplFile, err := os.Open(templatePath)
	if err != nil {
		return fmt.Errorf("无法打开模板文件 %s: %w", templatePath, err)
	}
	defer tplFile.Close()

	tpl, err := schema.ParseTemplate(tplFile)
	if err != nil {
		return err
	}

	var inputs schema.Inputs
	if inputsPath != "" {
		inFile, err := os.Open(inputsPath)
		if err != nil {
			return fmt.Errorf("无法打开输入文件 %s: %w", inputsPath, err)
		}
		defer inFile.Close()
		inputs, err = schema.ParseInputs(inFile)
		if err != nil {
			return err
		}
	}

	reg := fonts.NewRegistry()
	if fontDir != "" {
		if err := registerFontDir(reg, fontDir); err != nil {
			return err
		}
	}

	drv := canvasdriver.New(reg)
	r := render.New(drv, render.Options{BaseDir: baseDir})
	sess := render.NewSession()

	pdfBytes, err := r.Generate(tpl, inputs, sess)
	if err != nil {
		return err
	}

	for _, diag := range sess.Diagnostics() {
		log.Printf("跳过 schema %s：%s", diag.Schema, diag.Reason)
	}

	if planPath != "" {
		if err := writePlan(sess, planPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

// registerFontDir 把目录下的 .ttf/.otf 按去掉扩展名的文件名注册进注册表。
func registerFontDir(reg *fonts.Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("读取字体目录 %s 失败: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		reg.Register(name, fonts.Resource{Path: filepath.Join(dir, entry.Name())})
	}
	return nil
}

func writePlan(sess *render.Session, planPath string) error {
	if err := os.MkdirAll(filepath.Dir(planPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := render.WritePlanJSON(sess.Plans(), planPath); err != nil {
		return fmt.Errorf("输出排版计划失败: %w", err)
	}
	return nil
}
